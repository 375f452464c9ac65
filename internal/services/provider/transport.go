package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const maxErrorBody = 4096

// post sends a JSON body and returns the response body of a 2xx answer
func post(ctx context.Context, client HTTPClient, providerTag, url string, headers map[string]string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create %s request: %w", providerTag, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		logrus.Errorf("Error calling %s: %v", providerTag, err)
		return nil, 0, networkFailure(providerTag, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logrus.Warnf("%s returned status %d: %s", providerTag, resp.StatusCode, strings.TrimSpace(string(errBody)))
		return nil, resp.StatusCode, rejected(providerTag, resp.StatusCode, errBody)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, networkFailure(providerTag, err)
	}
	return respBody, resp.StatusCode, nil
}

// extractErrorMessage pulls a readable message out of a provider error body
func extractErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	for _, path := range []string{"error.message", "error", "message", "msg"} {
		if v := gjson.GetBytes(body, path); v.Exists() && v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return strings.TrimSpace(string(body))
}
