package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/commerce-admin-backend/internal/handlers"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

const (
	ContextUserID  = "user_id"
	ContextIsStaff = "is_staff"
)

// RequireAuth validates the Bearer token and stashes the caller identity on
// the request context.
func RequireAuth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handlers.Envelope{
				Status:  "error",
				Message: "Authentication credentials were not provided.",
			})
			return
		}
		claims, err := authService.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handlers.Envelope{
				Status:  "error",
				Message: "Invalid or expired token.",
			})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextIsStaff, claims.IsStaff)
		c.Next()
	}
}

// RequireAdmin gates staff-only routes. RequireAuth must run first.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsStaff) {
			c.AbortWithStatusJSON(http.StatusForbidden, handlers.Envelope{
				Status:  "error",
				Message: "You do not have permission to perform this action.",
			})
			return
		}
		c.Next()
	}
}
