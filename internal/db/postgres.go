package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/types"
	"github.com/yungbote/commerce-admin-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "commerce_admin", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	return MigrateModels(s.db)
}

// MigrateModels runs the schema migration for every domain model. Split out
// so the sqlite-backed test databases share the exact table set.
func MigrateModels(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&types.Permission{},
		&types.Role{},
		&types.User{},
		&types.Category{},
		&types.CategoryAttribute{},
		&types.Product{},
		&types.Order{},
		&types.OrderItem{},
	)
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
