package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
	pkgerrors "github.com/pkg/errors"
	kafkatc "github.com/testcontainers/testcontainers-go/modules/kafka"
	"go.uber.org/zap"

	"github.com/nazarijbeketovv/tech-assignment-payments/platform/logger"
	tcconst "github.com/nazarijbeketovv/tech-assignment-payments/platform/testcontainers"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type Config struct {
	ImageName string
	ClusterID string
	Topics    []string
	Logger    Logger
}

type Option func(*Config)

func WithImageName(image string) Option {
	return func(c *Config) { c.ImageName = image }
}

// WithTopics creates single-partition topics once the broker is up.
func WithTopics(topics ...string) Option {
	return func(c *Config) { c.Topics = append(c.Topics, topics...) }
}

func WithLogger(l Logger) Option {
	return func(c *Config) { c.Logger = l }
}

type Container struct {
	container *kafkatc.KafkaContainer
	brokers   []string
	cfg       *Config
}

func NewContainer(ctx context.Context, opts ...Option) (*Container, error) {
	cfg := &Config{
		ImageName: tcconst.KafkaImage,
		ClusterID: tcconst.KafkaClusterID,
		Logger:    &logger.NoopLogger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c, err := kafkatc.Run(ctx,
		cfg.ImageName,
		kafkatc.WithClusterID(cfg.ClusterID),
	)
	if err != nil {
		return nil, pkgerrors.Errorf("failed to start kafka container: %v", err)
	}

	success := false
	defer func() {
		if !success {
			if err := c.Terminate(ctx); err != nil {
				cfg.Logger.Error(ctx, "failed to terminate kafka container", zap.Error(err))
			}
		}
	}()

	brokers, err := c.Brokers(ctx)
	if err != nil {
		return nil, pkgerrors.Errorf("failed to get kafka brokers: %v", err)
	}

	if err := createTopics(brokers, cfg.Topics...); err != nil {
		return nil, pkgerrors.Errorf("failed to create topics: %v", err)
	}

	cfg.Logger.Info(ctx, "kafka container started", zap.Strings("brokers", brokers))
	success = true

	return &Container{container: c, brokers: brokers, cfg: cfg}, nil
}

func createTopics(brokers []string, topics ...string) error {
	if len(topics) == 0 {
		return nil
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V4_0_0_0
	cfg.Admin.Timeout = 10 * time.Second

	admin, err := sarama.NewClusterAdmin(brokers, cfg)
	if err != nil {
		return err
	}
	defer admin.Close()

	for _, t := range topics {
		err := admin.CreateTopic(t, &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		}, false)
		if err != nil && !errors.Is(err, sarama.ErrTopicAlreadyExists) {
			return err
		}
	}
	return nil
}

func (c *Container) Brokers() []string { return c.brokers }

func (c *Container) Terminate(ctx context.Context) error {
	if err := c.container.Terminate(ctx); err != nil {
		c.cfg.Logger.Error(ctx, "failed to terminate kafka container", zap.Error(err))
		return err
	}

	c.cfg.Logger.Info(ctx, "kafka container terminated")
	return nil
}
