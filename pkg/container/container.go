package container

import (
	"context"
	"fmt"
	"time"

	"mediareview-backend/internal/config"
	catalogHandler "mediareview-backend/internal/domains/catalog/handler"
	catalogRepo "mediareview-backend/internal/domains/catalog/repository"
	catalogService "mediareview-backend/internal/domains/catalog/service"
	reviewHandler "mediareview-backend/internal/domains/review/handler"
	reviewRepo "mediareview-backend/internal/domains/review/repository"
	reviewService "mediareview-backend/internal/domains/review/service"
	infraCache "mediareview-backend/internal/infrastructure/cache"
	"mediareview-backend/internal/infrastructure/database"
	"mediareview-backend/internal/infrastructure/queue"
	"mediareview-backend/pkg/cache"
	"mediareview-backend/pkg/jwt"
	"mediareview-backend/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton created once at startup and shared for the process lifetime.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Publisher  queue.Publisher
	JWTManager *jwt.Manager

	// Repositories
	ReviewRepo  reviewRepo.ReviewRepository
	CatalogRepo catalogRepo.CatalogRepository

	// Services
	ReviewService  reviewService.ServiceInterface
	CatalogService catalogService.ServiceInterface

	// Handlers
	ReviewHandler  *reviewHandler.ReviewHandler
	CatalogHandler *catalogHandler.CatalogHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the dependency graph in order: config, infrastructure,
// repositories, services, handlers. A wrong order here is a nil dereference
// at startup, so the stages stay explicit.
func NewContainer() (*Container, error) {
	c := &Container{}

	// Config depends on nothing.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	// Database.
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// Redis cache. A cache outage is not fatal: the service degrades to
	// hitting the database on every read.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			logger.Error("redis connection failed, continuing without warm cache", err)
		}
	}
	c.Cache = redisCache

	// Moderation event publisher.
	c.Publisher = queue.NewAsynqPublisher(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Queue.PublishTimeout,
		cfg.Queue.MaxRetries,
		cfg.Queue.RetryBaseDelay,
	)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

// ========================================
// LAYER INITIALIZATION
// ========================================

func (c *Container) initRepositories() {
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(c.DB.Pool)
	c.CatalogRepo = catalogRepo.NewPostgresCatalogRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.Publisher, c.Cache, c.Config.Queue.ModerationQueue)
	c.CatalogService = catalogService.NewCatalogService(c.CatalogRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			logger.Error("failed to close publisher", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Error("failed to close redis", err)
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("container cleanup completed", nil)
}
