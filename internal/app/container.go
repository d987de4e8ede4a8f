package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"internhub/internal/config"
	"internhub/internal/database"
	"internhub/internal/database/migration"
	dbpostgres "internhub/internal/database/postgres"
	"internhub/internal/database/seeder"
	"internhub/internal/infrastructure/cache"
	"internhub/internal/infrastructure/persistence/postgres"
	"internhub/internal/notification"
	"internhub/internal/pkg/jwt"
	"internhub/internal/repository"
	"internhub/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived resource of the process.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB         database.DB
	Redis      *cache.Redis
	Store      *repository.PostgresStore
	Users      *postgres.UserRepository
	JWT        jwt.Service
	Hub        *ws.Hub
	Dispatcher *notification.Dispatcher
	Locks      *cache.TransitionLock
	Limiter    *cache.RateLimiter

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: logger, DB: db}

	applied, err := migration.Runner{Dir: cfg.App.MigrateDir, Logger: logger}.Run(ctx, db.SQLDB())
	if err != nil {
		_ = c.Close(context.Background())
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("schema up to date", zap.Int("applied", applied))
	if cfg.App.SeedDemo {
		if err := (seeder.Runner{Seeders: seeder.Demo(), Logger: logger}).Run(ctx, db); err != nil {
			_ = c.Close(context.Background())
			return nil, err
		}
	}

	users, err := postgres.NewUserRepository(ctx, db.SQLDB())
	if err != nil {
		_ = c.Close(context.Background())
		return nil, err
	}
	c.Users = users
	c.Store = repository.NewPostgresStore(db)

	c.Redis = cache.NewRedis(cfg.Redis, logger)
	c.Locks = cache.NewTransitionLock(c.Redis, cfg.Redis.LockTTL)
	c.Limiter = cache.NewRateLimiter(c.Redis)

	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	hubCtx, stopHub := context.WithCancel(context.Background())
	c.stopHub = stopHub
	c.Hub = ws.NewHub(logger)
	go c.Hub.Run(hubCtx)

	notifiers := notification.Multi{c.Hub}
	if cfg.SMTP.Enabled() {
		notifiers = append(notifiers, notification.NewMailer(cfg.SMTP, c.Users))
		logger.Info("smtp notifications enabled", zap.String("host", cfg.SMTP.Host))
	}
	c.Dispatcher = notification.NewDispatcher(notifiers, cfg.Notification.SendTimeout, logger)

	return c, nil
}

// Close drains pending notifications and then releases resources in
// reverse order of acquisition.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Dispatcher != nil {
		if err := c.Dispatcher.Wait(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c.stopHub != nil {
		c.stopHub()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Users != nil {
		if err := c.Users.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
