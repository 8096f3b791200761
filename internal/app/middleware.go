package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/commerce-admin-backend/internal/middleware"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
)

type Middleware struct {
	Auth  gin.HandlerFunc
	Admin gin.HandlerFunc
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:  middleware.RequireAuth(serviceset.Auth),
		Admin: middleware.RequireAdmin(),
	}
}
