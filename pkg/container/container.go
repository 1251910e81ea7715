package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanwanruwoxin/my-zero2prod/internal/config"
	infracache "github.com/wanwanruwoxin/my-zero2prod/internal/infrastructure/cache"
	"github.com/wanwanruwoxin/my-zero2prod/internal/infrastructure/database"
	"github.com/wanwanruwoxin/my-zero2prod/internal/infrastructure/email"
	"github.com/wanwanruwoxin/my-zero2prod/pkg/cache"
	"github.com/wanwanruwoxin/my-zero2prod/pkg/logger"

	"github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription"
	subscriptionHandler "github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription/handler"
	subscriptionRepo "github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription/repository"
	subscriptionService "github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in order: config, logger,
// infrastructure, repository, service, handler.
type Container struct {
	Config *config.Config
	Log    zerolog.Logger

	DB    *database.PostgresDB
	Cache cache.Cache // nil when Redis is disabled or unreachable

	Mailer email.EmailService

	SubscriptionRepo    subscription.Repository
	SubscriptionService subscription.Service
	SubscriptionHandler *subscriptionHandler.SubscriptionHandler

	redisCache *infracache.RedisCache
}

// NewContainer builds and wires the whole dependency graph.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	c.Log = logger.New(cfg.App.Environment, cfg.App.LogLevel)
	c.Log.Info().Str("environment", cfg.App.Environment).Msg("configuration loaded")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(dbConfig, c.Log)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := c.DB.Migrate(ctx, cfg.App.MigrationsDir); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	// The cache is an optimization for the confirm path; a missing or
	// unreachable Redis degrades to plain database lookups.
	if cfg.Redis.Enabled {
		rc := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Ping(ctx); err != nil {
			c.Log.Warn().Err(err).Msg("redis unreachable, continuing without cache")
			_ = rc.Close()
		} else {
			c.redisCache = rc
			c.Cache = rc
		}
	}

	c.Mailer = email.NewSMTPEmailService(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, c.Log)

	c.SubscriptionRepo = subscriptionRepo.NewPostgresRepository(c.DB.Pool, c.Cache, c.Log)
	c.SubscriptionService = subscriptionService.NewSubscriptionService(
		c.SubscriptionRepo, c.Mailer, cfg.App.BaseURL, c.Log,
	)
	c.SubscriptionHandler = subscriptionHandler.NewSubscriptionHandler(c.SubscriptionService)

	return c, nil
}

// Cleanup releases held connections; called on shutdown.
func (c *Container) Cleanup() {
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			c.Log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
