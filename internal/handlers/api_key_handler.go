package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/credential"
)

// APIKeyHandler handles HTTP requests related to stored provider keys
type APIKeyHandler struct {
	credentialService *credential.Service
	healthChecker     *credential.HealthChecker
}

// NewAPIKeyHandler creates a new APIKeyHandler instance
func NewAPIKeyHandler(credentialService *credential.Service, healthChecker *credential.HealthChecker) *APIKeyHandler {
	return &APIKeyHandler{
		credentialService: credentialService,
		healthChecker:     healthChecker,
	}
}

// List handles GET /api/api-keys
// @Summary List API keys
// @Description List the provider keys of the authenticated user
// @Tags api-keys
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Credential
// @Failure 500 {object} map[string]interface{}
// @Router /api/api-keys [get]
func (h *APIKeyHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	credentials, err := h.credentialService.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get API keys")
		return
	}
	c.JSON(http.StatusOK, credentials)
}

// Create handles POST /api/api-keys
// @Summary Add API key
// @Description Store a provider key. It starts active, unused and untested.
// @Tags api-keys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCredentialRequest true "Provider and key"
// @Success 201 {object} models.Credential
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/api-keys [post]
func (h *APIKeyHandler) Create(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "error": err.Error()})
		return
	}

	created, err := h.credentialService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create API key")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get handles GET /api/api-keys/:id
// @Summary Get API key
// @Tags api-keys
// @Produce json
// @Security BearerAuth
// @Param id path string true "API key ID"
// @Success 200 {object} models.Credential
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/api-keys/{id} [get]
func (h *APIKeyHandler) Get(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	found, err := h.credentialService.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get API key")
		return
	}
	c.JSON(http.StatusOK, found)
}

// Update handles PUT /api/api-keys/:id
// @Summary Update API key
// @Description Partial update. Only fields present in the body are changed.
// @Tags api-keys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "API key ID"
// @Param request body models.UpdateCredentialRequest true "Fields to update"
// @Success 200 {object} models.Credential
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/api-keys/{id} [put]
func (h *APIKeyHandler) Update(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "error": err.Error()})
		return
	}

	updated, err := h.credentialService.Update(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update API key")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/api-keys/:id
// @Summary Delete API key
// @Tags api-keys
// @Produce json
// @Security BearerAuth
// @Param id path string true "API key ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/api-keys/{id} [delete]
func (h *APIKeyHandler) Delete(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	if err := h.credentialService.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete API key")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "API key deleted successfully"})
}

// Test handles POST /api/api-keys/:id/test
// @Summary Test API key connection
// @Description Send a minimal prompt with the key and store the connection status
// @Tags api-keys
// @Produce json
// @Security BearerAuth
// @Param id path string true "API key ID"
// @Success 200 {object} map[string]interface{} "connection_status: success | failed"
// @Failure 404 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/api-keys/{id}/test [post]
func (h *APIKeyHandler) Test(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	found, err := h.credentialService.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get API key")
		return
	}

	status, err := h.healthChecker.Check(c.Request.Context(), found)
	if err != nil {
		respondGenerationError(c, err, "Failed to test connection with "+found.Provider)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                found.ID,
		"provider":          found.Provider,
		"connection_status": status,
	})
}
