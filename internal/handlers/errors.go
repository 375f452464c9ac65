package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/generation"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/provider"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// statusForKind maps a generation error kind to its HTTP status
func statusForKind(kind string) int {
	switch kind {
	case generation.KindValidation:
		return http.StatusBadRequest
	case generation.KindNoCredential:
		return http.StatusNotFound
	case generation.KindProviderRejected, generation.KindNetwork, generation.KindEmptyGeneration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondGenerationError writes {message, kind, error} for a failed generation.
// Validation and missing-credential errors carry their own message.
func respondGenerationError(c *gin.Context, err error, message string) {
	kind := generation.ErrorKind(err)
	status := statusForKind(kind)

	body := gin.H{"kind": kind}
	switch kind {
	case generation.KindValidation, generation.KindNoCredential:
		body["message"] = err.Error()
	default:
		body["message"] = message
		body["error"] = upstreamDetail(err)
	}

	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{"kind": kind, "path": c.Request.URL.Path}).Errorf("%s: %v", message, err)
		if status == http.StatusInternalServerError {
			utils.CaptureError(err, map[string]string{"kind": kind, "path": c.FullPath()})
		}
	}

	c.JSON(status, body)
}

// upstreamDetail returns the provider's error body when there is one, as
// JSON when it parses, otherwise its message or the wrapped chain.
func upstreamDetail(err error) interface{} {
	var upstream *provider.UpstreamError
	if !errors.As(err, &upstream) {
		return err.Error()
	}
	if payload := upstream.Payload; payload != "" {
		if gjson.Valid(payload) {
			return json.RawMessage(payload)
		}
		return payload
	}
	if upstream.Message != "" {
		return upstream.Message
	}
	return err.Error()
}

// respondServiceError handles the shared validation / not-found / internal cases
func respondServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, utils.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, utils.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		logrus.Errorf("%s: %v", message, err)
		utils.CaptureError(err, map[string]string{"path": c.FullPath()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": message, "error": err.Error()})
	}
}

// failedProvider names the provider of a failed upstream call
func failedProvider(err error) string {
	var upstream *provider.UpstreamError
	if errors.As(err, &upstream) && upstream.Provider != "" {
		return upstream.Provider
	}
	return "AI provider"
}
