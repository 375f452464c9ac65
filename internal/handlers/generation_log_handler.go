package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onegreenvn/content-multiplier-backend/internal/services"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	streamBacklog     = 50
	heartbeatInterval = 30 * time.Second
)

type GenerationLogHandler struct {
	logService        *services.GenerationLogService
	sseHub            *services.SSEHub
	heartbeatInterval time.Duration
}

func NewGenerationLogHandler(logService *services.GenerationLogService, sseHub *services.SSEHub) *GenerationLogHandler {
	return &GenerationLogHandler{
		logService:        logService,
		sseHub:            sseHub,
		heartbeatInterval: heartbeatInterval,
	}
}

// GetLogs godoc
// @Summary Get generation logs for the current user
// @Description Paginated generation activity (started, completed, failed), newest first
// @Tags generation-logs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{} "data: []models.GenerationLog, pagination: utils.PaginationResponse"
// @Failure 500 {object} map[string]interface{}
// @Router /api/generation-logs [get]
func (h *GenerationLogHandler) GetLogs(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	page, pageSize := utils.ParsePaginationFromQuery(c.DefaultQuery("page", "1"), c.DefaultQuery("page_size", "20"))

	logs, pagination, err := h.logService.GetLogsByUserID(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		respondServiceError(c, err, "Failed to get logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       logs,
		"pagination": pagination,
	})
}

// StreamLogs godoc
// @Summary Stream generation logs via Server-Sent Events (SSE)
// @Description Replays the latest logs, then streams new ones as they are recorded. Browsers may pass the access token as ?token=.
// @Tags generation-logs
// @Produce text/event-stream
// @Security BearerAuth
// @Param token query string false "Access token when no Authorization header can be set"
// @Success 200 "SSE stream"
// @Router /api/generation-logs/stream [get]
func (h *GenerationLogHandler) StreamLogs(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable buffering for nginx

	clientChan := h.sseHub.RegisterClient(userID)
	defer h.sseHub.UnregisterClient(userID, clientChan)

	c.SSEvent("connected", gin.H{
		"user_id": userID,
		"message": "Connected to log stream",
	})
	c.Writer.Flush()

	// Replay recent logs oldest first so the client sees them in order
	backlog, _, err := h.logService.GetLogsByUserID(c.Request.Context(), userID, 1, streamBacklog)
	if err == nil {
		for i := len(backlog) - 1; i >= 0; i-- {
			c.SSEvent("log", backlog[i])
		}
		c.Writer.Flush()
	}

	ticker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			logrus.Infof("SSE client disconnected: %s", userID)
			return
		case <-ticker.C:
			h.sseHub.SendHeartbeat(userID)
		case message, ok := <-clientChan:
			if !ok {
				return
			}
			if _, err := c.Writer.Write(message); err != nil {
				logrus.Errorf("Failed to write SSE message: %v", err)
				return
			}
			c.Writer.Flush()
		}
	}
}
