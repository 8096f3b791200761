package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Email and password are required."))
		return
	}
	token, user, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"token": token, "user": user})
}
