package app

import (
	"github.com/yungbote/commerce-admin-backend/internal/handlers"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Category   *handlers.CategoryHandler
	Permission *handlers.PermissionHandler
	Attribute  *handlers.AttributeHandler
	Product    *handlers.ProductHandler
	Order      *handlers.OrderHandler
	User       *handlers.UserHandler
	Role       *handlers.RoleHandler
	Report     *handlers.ReportHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(serviceset.Auth),
		Category:   handlers.NewCategoryHandler(serviceset.Category),
		Permission: handlers.NewPermissionHandler(serviceset.Permission),
		Attribute:  handlers.NewAttributeHandler(serviceset.Attribute),
		Product:    handlers.NewProductHandler(serviceset.Product),
		Order:      handlers.NewOrderHandler(serviceset.Order),
		User:       handlers.NewUserHandler(serviceset.User),
		Role:       handlers.NewRoleHandler(serviceset.Role),
		Report:     handlers.NewReportHandler(serviceset.Report),
	}
}
