package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/db"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cache    *redis.Client
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	cache := newRedisClient(cfg, log)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, cache)
	handlerset := wireHandlers(log, serviceset)
	mw := wireMiddleware(log, serviceset)
	router := wireRouter(handlerset, mw)

	return &App{
		Log:      log,
		DB:       theDB,
		Cache:    cache,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.HTTPPort)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Cache != nil {
		a.Cache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
