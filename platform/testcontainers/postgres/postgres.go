package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/nazarijbeketovv/tech-assignment-payments/platform/db/migrator"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/logger"
	tcconst "github.com/nazarijbeketovv/tech-assignment-payments/platform/testcontainers"
)

const postgresStartupTimeout = 1 * time.Minute

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type Config struct {
	ImageName     string
	Database      string
	Username      string
	Password      string
	MigrationsDir string
	Logger        Logger
}

type Option func(*Config)

func WithImageName(image string) Option {
	return func(c *Config) { c.ImageName = image }
}

func WithDatabase(db string) Option {
	return func(c *Config) { c.Database = db }
}

func WithAuth(username, password string) Option {
	return func(c *Config) {
		c.Username = username
		c.Password = password
	}
}

// WithMigrations applies goose migrations from dir right after start.
func WithMigrations(dir string) Option {
	return func(c *Config) { c.MigrationsDir = dir }
}

func WithLogger(l Logger) Option {
	return func(c *Config) { c.Logger = l }
}

type Container struct {
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	dsn       string
	cfg       *Config
}

func NewContainer(ctx context.Context, opts ...Option) (*Container, error) {
	cfg := &Config{
		ImageName: tcconst.PostgresImage,
		Database:  tcconst.PostgresDatabase,
		Username:  tcconst.PostgresUsername,
		Password:  tcconst.PostgresPassword,
		Logger:    &logger.NoopLogger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c, err := tcpostgres.Run(ctx,
		cfg.ImageName,
		tcpostgres.WithDatabase(cfg.Database),
		tcpostgres.WithUsername(cfg.Username),
		tcpostgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(tcconst.PostgresPort+"/tcp").WithStartupTimeout(postgresStartupTimeout),
		),
	)
	if err != nil {
		return nil, errors.Errorf("failed to start postgres container: %v", err)
	}

	success := false
	defer func() {
		if !success {
			if err := c.Terminate(ctx); err != nil {
				cfg.Logger.Error(ctx, "failed to terminate postgres container", zap.Error(err))
			}
		}
	}()

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, errors.Errorf("failed to build connection string: %v", err)
	}

	pool, err := connectPool(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MigrationsDir != "" {
		m := migrator.NewMigrator(stdlib.OpenDBFromPool(pool), cfg.MigrationsDir)
		err := m.Up()
		_ = m.Close()
		if err != nil {
			pool.Close()
			return nil, errors.Errorf("failed to apply migrations: %v", err)
		}
	}

	cfg.Logger.Info(ctx, "postgres container started", zap.String("database", cfg.Database))
	success = true

	return &Container{container: c, pool: pool, dsn: dsn, cfg: cfg}, nil
}

func connectPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Errorf("failed to create pgx pool: %v", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for {
		err = pool.Ping(ctx)
		if err == nil {
			return pool, nil
		}
		if time.Now().After(deadline) {
			pool.Close()
			return nil, errors.Errorf("failed to ping postgres: %v", err)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func (c *Container) Pool() *pgxpool.Pool { return c.pool }

func (c *Container) DSN() string { return c.dsn }

func (c *Container) Terminate(ctx context.Context) error {
	c.pool.Close()

	if err := c.container.Terminate(ctx); err != nil {
		c.cfg.Logger.Error(ctx, "failed to terminate postgres container", zap.Error(err))
		return err
	}

	c.cfg.Logger.Info(ctx, "postgres container terminated")
	return nil
}
