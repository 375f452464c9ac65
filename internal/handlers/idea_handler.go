package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/services"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/generation"
)

// IdeaHandler serves idea generation and the user's saved ideas
type IdeaHandler struct {
	generationService *generation.Service
	ideaService       *services.IdeaService
}

func NewIdeaHandler(generationService *generation.Service, ideaService *services.IdeaService) *IdeaHandler {
	return &IdeaHandler{
		generationService: generationService,
		ideaService:       ideaService,
	}
}

// GenerateIdeas godoc
// @Summary Generate content ideas
// @Description Generate exactly ten ideas for a persona and industry with the user's best API key
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.GenerateIdeasRequest true "Persona and industry"
// @Success 200 {object} models.GenerateIdeasResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "No active API key"
// @Failure 502 {object} map[string]interface{} "Provider failure"
// @Failure 500 {object} map[string]interface{}
// @Router /api/ideas/generate [post]
func (h *IdeaHandler) GenerateIdeas(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.GenerateIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "kind": generation.KindValidation, "error": err.Error()})
		return
	}

	result, err := h.generationService.GenerateIdeas(c.Request.Context(), userID, req.Persona, req.Industry)
	if err != nil {
		respondGenerationError(c, err, "Failed to generate ideas from "+failedProvider(err))
		return
	}

	c.JSON(http.StatusOK, models.GenerateIdeasResponse{
		Ideas:      result.Ideas,
		Persona:    result.Persona,
		Industry:   result.Industry,
		APIKeyUsed: result.Usage,
	})
}

// SaveIdea godoc
// @Summary Save idea
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SaveIdeaRequest true "Idea to keep"
// @Success 201 {object} models.Idea
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/ideas/save [post]
func (h *IdeaHandler) SaveIdea(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.SaveIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "error": err.Error()})
		return
	}

	idea, err := h.ideaService.SaveIdea(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to save idea")
		return
	}
	c.JSON(http.StatusCreated, idea)
}

// ListIdeas godoc
// @Summary List saved ideas
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Idea
// @Failure 500 {object} map[string]interface{}
// @Router /api/ideas [get]
func (h *IdeaHandler) ListIdeas(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	ideas, err := h.ideaService.ListIdeas(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get ideas")
		return
	}
	c.JSON(http.StatusOK, ideas)
}

// DeleteIdea godoc
// @Summary Delete saved idea
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/ideas/{id} [delete]
func (h *IdeaHandler) DeleteIdea(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	if err := h.ideaService.DeleteIdea(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete idea")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Idea deleted successfully"})
}
