package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/excel"
	"github.com/sirupsen/logrus"
)

// ExcelHandler handles HTTP requests related to Excel exports
type ExcelHandler struct {
	excelService *excel.Service
}

// NewExcelHandler creates a new ExcelHandler instance
func NewExcelHandler(excelService *excel.Service) *ExcelHandler {
	return &ExcelHandler{excelService: excelService}
}

// ExportIdeas handles GET /api/ideas/export
// @Summary Export saved ideas to Excel
// @Tags ideas
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "Excel file"
// @Failure 500 {object} map[string]interface{}
// @Router /api/ideas/export [get]
func (h *ExcelHandler) ExportIdeas(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	result, err := h.excelService.ExportIdeas(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to export ideas")
		return
	}
	h.serve(c, result)
}

// ExportBriefs handles GET /api/briefs/export
// @Summary Export saved briefs to Excel
// @Tags briefs
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "Excel file"
// @Failure 500 {object} map[string]interface{}
// @Router /api/briefs/export [get]
func (h *ExcelHandler) ExportBriefs(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	result, err := h.excelService.ExportBriefs(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to export briefs")
		return
	}
	h.serve(c, result)
}

// serve streams the workbook as an attachment and removes it afterwards
func (h *ExcelHandler) serve(c *gin.Context, result *excel.ExportResult) {
	defer func() {
		if err := os.Remove(result.FilePath); err != nil && !os.IsNotExist(err) {
			logrus.Warnf("Failed to remove export %s: %v", result.FilePath, err)
		}
	}()

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	c.Header("Cache-Control", "must-revalidate")
	c.Header("X-Export-Rows", fmt.Sprintf("%d", result.Rows))
	c.Status(http.StatusOK)

	c.File(result.FilePath)
}
