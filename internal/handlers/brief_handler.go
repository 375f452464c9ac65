package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/services"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/generation"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/provider"
)

// BriefHandler serves brief generation and the user's saved briefs
type BriefHandler struct {
	generationService *generation.Service
	briefService      *services.BriefService
}

func NewBriefHandler(generationService *generation.Service, briefService *services.BriefService) *BriefHandler {
	return &BriefHandler{
		generationService: generationService,
		briefService:      briefService,
	}
}

// GenerateBrief godoc
// @Summary Generate content brief
// @Description Generate a free-text brief that develops one idea
// @Tags briefs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.GenerateBriefRequest true "Persona, industry and idea"
// @Success 200 {object} models.GenerateBriefResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "No active API key"
// @Failure 502 {object} map[string]interface{} "Provider failure"
// @Failure 500 {object} map[string]interface{}
// @Router /api/briefs/generate [post]
func (h *BriefHandler) GenerateBrief(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.GenerateBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "kind": generation.KindValidation, "error": err.Error()})
		return
	}

	result, err := h.generationService.GenerateBrief(c.Request.Context(), userID, req.Persona, req.Industry, req.Idea)
	if err != nil {
		message := "Failed to generate brief from " + failedProvider(err)
		if errors.Is(err, provider.ErrEmptyGeneration) {
			message = "Failed to generate brief - empty response from AI"
		}
		respondGenerationError(c, err, message)
		return
	}

	c.JSON(http.StatusOK, models.GenerateBriefResponse{
		Brief:      result.Brief,
		Persona:    result.Persona,
		Industry:   result.Industry,
		Idea:       result.Idea,
		APIKeyUsed: result.Usage,
	})
}

// SaveBrief godoc
// @Summary Save brief
// @Description Store a brief. When ideaId is given the idea is marked as used.
// @Tags briefs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SaveBriefRequest true "Brief to keep"
// @Success 201 {object} models.Brief
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/briefs [post]
func (h *BriefHandler) SaveBrief(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.SaveBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "error": err.Error()})
		return
	}

	brief, err := h.briefService.SaveBrief(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to save brief")
		return
	}
	c.JSON(http.StatusCreated, brief)
}

// ListBriefs godoc
// @Summary List saved briefs
// @Tags briefs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Brief
// @Failure 500 {object} map[string]interface{}
// @Router /api/briefs [get]
func (h *BriefHandler) ListBriefs(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	briefs, err := h.briefService.ListBriefs(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get briefs")
		return
	}
	c.JSON(http.StatusOK, briefs)
}
