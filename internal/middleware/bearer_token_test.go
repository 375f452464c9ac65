package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
)

type fakeValidator struct{}

func (fakeValidator) ValidateToken(ctx context.Context, tokenString string) (*models.TokenInfo, error) {
	switch tokenString {
	case "admin-token":
		return &models.TokenInfo{UserID: "admin-1", Role: models.RoleAdmin}, nil
	case "user-token":
		return &models.TokenInfo{UserID: "user-1", Role: models.RoleUser}, nil
	default:
		return nil, errors.New("bad token")
	}
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := NewBearerTokenMiddleware(fakeValidator{})

	protected := r.Group("/", auth.BearerTokenAuthMiddleware())
	protected.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.MustGet("user_id").(string))
	})
	protected.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestBearerTokenAuthMiddleware(t *testing.T) {
	r := newTestEngine()

	tests := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{"valid header", "/me", "Bearer user-token", http.StatusOK, "user-1"},
		{"query token", "/me?token=user-token", "", http.StatusOK, "user-1"},
		{"missing", "/me", "", http.StatusUnauthorized, "Invalid authorization header format"},
		{"wrong scheme", "/me", "Basic abc", http.StatusUnauthorized, "Invalid authorization header format"},
		{"bad token", "/me", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"admin only", "/admin", "Bearer user-token", http.StatusForbidden, "Admin access required"},
		{"admin ok", "/admin", "Bearer admin-token", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Contains(t, w.Body.String(), tt.body)
			}
		})
	}
}
