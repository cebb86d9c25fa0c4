package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"

	"blog-backend/internal/domains/blog"
	blogHandler "blog-backend/internal/domains/blog/handler"
	blogRepo "blog-backend/internal/domains/blog/repository"
	blogService "blog-backend/internal/domains/blog/service"
	"blog-backend/internal/domains/user"
	userHandler "blog-backend/internal/domains/user/handler"
	userRepo "blog-backend/internal/domains/user/repository"
	userService "blog-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	TaskClient *asynq.Client
	JWTManager *jwt.Manager

	UserRepo user.Repository
	BlogRepo blog.Repository

	UserService user.Service
	BlogService blog.Service

	UserHandler *userHandler.UserHandler
	BlogHandler *blogHandler.BlogHandler
}

// NewContainer builds the full graph. A wrong initialization order here
// is a nil dereference at the first request, so the phases below stay
// strictly ordered.
func NewContainer() (*Container, error) {
	logger.Info("Initializing DI container", nil)

	c := &Container{}

	// Phase 1: configuration. Depends on nothing.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("Config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	// Phase 2: database.
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	logger.Info("Database connected", nil)

	// Phase 3: cache. Redis being down is not fatal; the feed cache
	// degrades to direct reads.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			logger.Warn("Redis connection failed (non-critical)", err)
		} else {
			logger.Info("Redis connected", nil)
		}
	}
	c.Cache = redisCache

	// Phase 4: object storage and the task queue client.
	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store
	logger.Info("Object storage ready", map[string]interface{}{"bucket": cfg.MinIO.Bucket})

	c.TaskClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Phase 5: repositories.
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.BlogRepo = blogRepo.NewPostgresRepository(db.Pool, c.Cache)

	// Phase 6: services.
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Storage)
	c.BlogService = blogService.NewBlogService(c.BlogRepo, c.Storage, c.TaskClient)

	// Phase 7: handlers.
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService)

	logger.Info("DI container initialized", nil)
	return c, nil
}

// Cleanup releases held resources. Called during graceful shutdown.
func (c *Container) Cleanup() {
	logger.Info("Cleaning up container resources", nil)

	if c.TaskClient != nil {
		if err := c.TaskClient.Close(); err != nil {
			logger.Warn("Failed to close task client", err)
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		logger.Info("Database connections closed", nil)
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Warn("Failed to close Redis", err)
			} else {
				logger.Info("Redis connections closed", nil)
			}
		}
	}

	logger.Info("Container cleanup completed", nil)
}
