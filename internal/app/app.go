package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	goredis "github.com/daniluce/portfolio-backend/internal/clients/redis"
	"github.com/daniluce/portfolio-backend/internal/db"
	"github.com/daniluce/portfolio-backend/internal/domain"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
	"github.com/daniluce/portfolio-backend/internal/platform/storage"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	pg    *db.PostgresService
	cache *goredis.Cache
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
	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	theDB := pg.DB()

	if err := db.AutoMigrateAll(theDB); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	// Older deployments predate session grouping; make sure the column
	// and its index exist before any query depends on them.
	guard := db.NewSchemaGuard(theDB, log)
	if err := guard.EnsureColumn(&domain.Photo{}, "session_slug", "idx_photos_session_slug"); err != nil {
		log.Sync()
		return nil, fmt.Errorf("ensure session_slug column: %w", err)
	}

	store, err := storage.New(log, cfg.MediaRoot, cfg.MediaPublicPrefix)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init media storage: %w", err)
	}

	// Redis is optional: listings fall through to the database when the
	// cache is unavailable.
	cache, err := goredis.NewCache(log)
	if err != nil {
		log.Warn("redis unavailable, caching disabled", "error", err)
		cache = nil
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, store, cache)
	handlerset := wireHandlers(log, cfg, serviceset)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		pg:       pg,
		cache:    cache,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.Log.Warn("closing redis", "error", err)
		}
	}
	if a.pg != nil {
		if err := a.pg.Close(); err != nil {
			a.Log.Warn("closing postgres", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
