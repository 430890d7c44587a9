package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/search/internal/api"
	"storefront/search/internal/cache"
	"storefront/search/internal/client"
	"storefront/search/internal/config"
	"storefront/search/internal/queue"
	"storefront/search/internal/repository"
	"storefront/search/internal/service"
	"storefront/search/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Catalog    client.CatalogClient
	Repository repository.SearchEventRepository
	Queue      queue.Queue
	Service    *service.Service
	Server     *http.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	if level < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	pool := upstream.NewPool(ctx, cfg.Catalog.BaseURLs, cfg.Catalog.HealthPath)

	db, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	container.db = db

	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	container.Repository = repository.NewSearchEventRepository(db)

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})
	container.redis = rdb

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("✅ Connected to Redis successfully")

	redisQueue, err := queue.NewRedisQueue(ctx, rdb, cfg.Redis)
	if err != nil {
		container.Close()
		return nil, err
	}
	container.Queue = redisQueue

	catalogClient := client.NewCatalogClient(cfg.Catalog, pool)
	catalogCache := cache.NewCachedCatalog(rdb, catalogClient, time.Duration(cfg.Search.CatalogCacheTTL)*time.Second)
	container.Catalog = catalogCache

	container.Service = service.NewService(
		container.Catalog,
		redisQueue,
		container.Repository,
		cfg.Redis.ConsumerGroup,
		cfg.Redis.MinIdleTime,
	)

	handlers := &api.Handlers{Searcher: container.Service, Cache: catalogCache}
	container.Server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.SetupRouter(handlers, cfg.Server.AllowedOrigin),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return container, nil
}

// Run serves HTTP and consumes search events until ctx is cancelled.
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("🚀 Search API listening on %s", c.Server.Addr)
		if err := c.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return c.Server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return c.Service.RunWorkers(ctx, c.Config.Search.EventWorkers)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close Redis client: %w", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
