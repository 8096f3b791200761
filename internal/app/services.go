package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Category   services.CategoryService
	Permission services.PermissionService
	Attribute  services.AttributeService
	Product    services.ProductService
	Order      services.OrderService
	User       services.UserService
	Role       services.RoleService
	Report     services.ReportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, cache *redis.Client) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:       services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Category:   services.NewCategoryService(db, log, reposet.Category),
		Permission: services.NewPermissionService(db, log, reposet.Permission),
		Attribute:  services.NewAttributeService(db, log, reposet.Attribute, reposet.Category),
		Product:    services.NewProductService(db, log, reposet.Product, reposet.Category),
		Order:      services.NewOrderService(db, log, reposet.Order, reposet.Product, reposet.User),
		User:       services.NewUserService(db, log, reposet.User, reposet.Role),
		Role:       services.NewRoleService(db, log, reposet.Role, reposet.Permission),
		Report:     services.NewReportService(log, reposet.Report, cache),
	}
}
