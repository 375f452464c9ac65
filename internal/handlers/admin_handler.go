package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/services"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
)

// AdminHandler serves user administration and login history
type AdminHandler struct {
	userService *services.UserService
}

func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// GetAllUsers godoc
// @Summary List users
// @Description Get a page of users, newest first. search matches email or full name.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Search by email or full name"
// @Success 200 {object} map[string]interface{} "data: []models.User, pagination: utils.PaginationResponse"
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/users [get]
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.DefaultQuery("page", "1"), c.DefaultQuery("page_size", "20"))

	users, pagination, err := h.userService.GetAllUsers(c.Request.Context(), page, pageSize, c.Query("search"))
	if err != nil {
		respondServiceError(c, err, "Failed to get users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       users,
		"pagination": pagination,
	})
}

// GetUser godoc
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update user (Admin only)
// @Description Partial update of role, profile fields, account status and IP/MAC binding
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body models.UpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "error": err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// DeleteUser godoc
// @Summary Delete user (Admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	currentUserID := c.MustGet("user_id").(string)

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"), currentUserID); err != nil {
		respondServiceError(c, err, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetLoginHistory godoc
// @Summary Login history
// @Description Latest login of every user, joined with the user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LoginHistoryEntry
// @Failure 500 {object} map[string]interface{}
// @Router /api/login-history [get]
func (h *AdminHandler) GetLoginHistory(c *gin.Context) {
	entries, err := h.userService.GetLoginHistory(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to get login history")
		return
	}
	c.JSON(http.StatusOK, entries)
}
