package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
)

type Repos struct {
	Category   repos.CategoryRepo
	Permission repos.PermissionRepo
	Attribute  repos.AttributeRepo
	Product    repos.ProductRepo
	Order      repos.OrderRepo
	User       repos.UserRepo
	Role       repos.RoleRepo
	Report     repos.ReportRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Category:   repos.NewCategoryRepo(db, log),
		Permission: repos.NewPermissionRepo(db, log),
		Attribute:  repos.NewAttributeRepo(db, log),
		Product:    repos.NewProductRepo(db, log),
		Order:      repos.NewOrderRepo(db, log),
		User:       repos.NewUserRepo(db, log),
		Role:       repos.NewRoleRepo(db, log),
		Report:     repos.NewReportRepo(db, log),
	}
}
