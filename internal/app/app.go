package app

import (
	"context"
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/config"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/transport/http/health"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/transport/http/middleware"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/closer"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/logger"
)

type app struct {
	di     *di
	server *http.Server
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initTables,
		a.initServer,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	closer.AddNamed("Logger", func(ctx context.Context) error {
		_ = logger.Sync()
		return nil
	})
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

func (a *app) initTables(ctx context.Context) error {
	m := a.di.Migrator(ctx)
	if err := m.Up(); err != nil {
		logger.Error(ctx, "failed to apply migrations", logger.ErrorF(err))
		return err
	}

	version, err := m.Version()
	if err != nil {
		logger.Error(ctx, "failed to read schema version", logger.ErrorF(err))
		return err
	}
	logger.Info(ctx, "migrations applied", logger.Int64("schema_version", version))
	return nil
}

func (a *app) initServer(ctx context.Context) error {
	cfg := config.C()

	r := a.di.Router(ctx)
	r.Use(
		chimiddleware.Recoverer,
		chimiddleware.Logger,
		middleware.Metrics,
	)
	a.di.PaymentsHandler(ctx).Register(r)

	r.HandleFunc("/health", health.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	a.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
		WriteTimeout:      cfg.Server.WriteTimeout(),
	}

	closer.AddNamed("HTTP server", func(ctx context.Context) error {
		return a.server.Shutdown(ctx)
	})
	return nil
}

func (a *app) run(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)

	if config.C().Kafka.Enabled() {
		eg.Go(func() error {
			logger.Info(egCtx,
				"🚀 bank webhook consumer running",
				logger.Strings("kafka_brokers", config.C().Kafka.Brokers()),
				logger.String("topic", config.C().Kafka.WebhookTopic()),
			)
			err := a.di.WebhookConsumer(egCtx).RunWebhookConsume(egCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		})
	}

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 payments server listening",
			logger.String("address", config.C().Server.Address()),
		)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info(ctx, "🛑 Server shutdown...")

		gracefulShutdown()
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Server.ShutdownTimeout(),
	)
	defer cancel()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during server shutdown", logger.ErrorF(err))
		logger.Error(ctx, "❌😵‍💫 Server stopped")
		return
	}
	logger.Info(ctx, "✅ Server stopped")
}
