package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/config"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/converter"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
	cache "github.com/nazarijbeketovv/tech-assignment-payments/internal/repository/cache/balance"
	orgrepository "github.com/nazarijbeketovv/tech-assignment-payments/internal/repository/organization"
	pmtrepository "github.com/nazarijbeketovv/tech-assignment-payments/internal/repository/payment"
	whconsumer "github.com/nazarijbeketovv/tech-assignment-payments/internal/service/consumer/webhook"
	orgservice "github.com/nazarijbeketovv/tech-assignment-payments/internal/service/organization"
	pmtservice "github.com/nazarijbeketovv/tech-assignment-payments/internal/service/payment"
	balproducer "github.com/nazarijbeketovv/tech-assignment-payments/internal/service/producer/balance"
	thttp "github.com/nazarijbeketovv/tech-assignment-payments/internal/transport/http/payments/v1"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/closer"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/db/migrator"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/kafka"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/kafka/consumer"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/kafka/middleware"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/kafka/producer"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/logger"
)

type Converter interface {
	WebhookPayloadToRequest(data []byte) (model.WebhookRequest, error)
	BalanceCreditedToPayload(e model.BalanceCredited) ([]byte, error)
}

type WebhookConsumer interface {
	RunWebhookConsume(ctx context.Context) error
}

type BalanceCache interface {
	orgservice.BalanceCache
	pmtservice.BalanceCache
}

type PaymentService interface {
	thttp.PaymentService
	whconsumer.Service
}

type PaymentsHandler interface {
	Register(r chi.Router)
}

type di struct {
	dbPool                 *pgxpool.Pool
	migrator               *migrator.Migrator
	organizationRepository orgservice.OrganizationRepository
	paymentRepository      pmtservice.PaymentRepository

	redisClient  redis.UniversalClient
	balanceCache BalanceCache

	consumerGroup        sarama.ConsumerGroup
	webhookKafkaConsumer kafka.Consumer
	webhookConsumer      WebhookConsumer

	syncProducer            sarama.SyncProducer
	balanceCreditedProducer kafka.Producer
	balanceProducer         pmtservice.BalanceCreditedSender

	conv Converter

	paymentService      PaymentService
	organizationService thttp.OrganizationService
	handler             PaymentsHandler

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) OrganizationRepository(ctx context.Context) orgservice.OrganizationRepository {
	if d.organizationRepository == nil {
		d.organizationRepository = orgrepository.NewOrganizationRepository(d.DBPool(ctx))
	}

	return d.organizationRepository
}

func (d *di) PaymentRepository(ctx context.Context) pmtservice.PaymentRepository {
	if d.paymentRepository == nil {
		d.paymentRepository = pmtrepository.NewPaymentRepository(d.DBPool(ctx))
	}

	return d.paymentRepository
}

func (d *di) RedisClient(ctx context.Context) redis.UniversalClient {
	if d.redisClient == nil {
		cfg := config.C()

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address(),
			Password: cfg.Redis.Password(),
			DB:       cfg.Redis.DB(),
		})

		closer.AddNamed("Redis client", func(ctx context.Context) error {
			return client.Close()
		})

		if err := client.Ping(ctx).Err(); err != nil {
			panic(fmt.Sprintf("failed to ping redis %s: %v\n", cfg.Redis.Address(), err))
		}

		d.redisClient = client
	}

	return d.redisClient
}

func (d *di) BalanceCache(ctx context.Context) BalanceCache {
	if d.balanceCache == nil {
		cfg := config.C()

		if !cfg.Redis.Enabled() {
			logger.Warn(ctx, "redis disabled, balance cache is off")
			d.balanceCache = cache.NewNoopCache()
			return d.balanceCache
		}

		d.balanceCache = cache.NewBalanceCache(d.RedisClient(ctx), cfg.Redis.BalanceTTL())
	}

	return d.balanceCache
}

func (d *di) KafkaConverter(ctx context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) ConsumerGroup(ctx context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.WebhookConsumerGroupID(),
			cfg.Kafka.WebhookConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka consumer group", func(ctx context.Context) error {
			return consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) WebhookKafkaConsumer(ctx context.Context) kafka.Consumer {
	if d.webhookKafkaConsumer == nil {
		d.webhookKafkaConsumer = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.C().Kafka.WebhookTopic(),
			},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
		)
	}

	return d.webhookKafkaConsumer
}

func (d *di) WebhookConsumer(ctx context.Context) WebhookConsumer {
	if d.webhookConsumer == nil {
		d.webhookConsumer = whconsumer.NewWebhookConsumer(
			d.WebhookKafkaConsumer(ctx),
			d.KafkaConverter(ctx),
			d.PaymentService(ctx),
		)
	}

	return d.webhookConsumer
}

func (d *di) SyncProducer(ctx context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.BalanceCreditedProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) BalanceCreditedProducer(ctx context.Context) kafka.Producer {
	if d.balanceCreditedProducer == nil {
		cfg := config.C()

		d.balanceCreditedProducer = producer.NewBreakerProducer(
			producer.NewProducer(
				d.SyncProducer(ctx),
				cfg.Kafka.BalanceCreditedTopic(),
				logger.L(),
			),
			producer.BreakerSettings{
				Name:             cfg.Kafka.BalanceCreditedTopic(),
				MaxRequests:      1,
				Timeout:          cfg.Kafka.BreakerTimeout(),
				FailureThreshold: cfg.Kafka.BreakerFailureThreshold(),
			},
			logger.L(),
		)
	}

	return d.balanceCreditedProducer
}

func (d *di) BalanceProducer(ctx context.Context) pmtservice.BalanceCreditedSender {
	if d.balanceProducer == nil {
		if !config.C().Kafka.Enabled() {
			logger.Warn(ctx, "kafka disabled, balance.credited events are not published")
			d.balanceProducer = balproducer.NewNoopBalanceProducer()
			return d.balanceProducer
		}

		d.balanceProducer = balproducer.NewBalanceProducer(
			d.BalanceCreditedProducer(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.balanceProducer
}

func (d *di) PaymentService(ctx context.Context) PaymentService {
	if d.paymentService == nil {
		d.paymentService = pmtservice.NewPaymentService(
			d.OrganizationRepository(ctx),
			d.PaymentRepository(ctx),
			d.BalanceCache(ctx),
			d.BalanceProducer(ctx),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.paymentService
}

func (d *di) OrganizationService(ctx context.Context) thttp.OrganizationService {
	if d.organizationService == nil {
		d.organizationService = orgservice.NewOrganizationService(
			d.OrganizationRepository(ctx),
			d.BalanceCache(ctx),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.organizationService
}

func (d *di) PaymentsHandler(ctx context.Context) PaymentsHandler {
	if d.handler == nil {
		d.handler = thttp.NewPaymentsHandler(
			d.PaymentService(ctx),
			d.OrganizationService(ctx),
		)
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
