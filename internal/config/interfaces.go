package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
	ShutdownTimeout() time.Duration
	DBReadTimeout() time.Duration
	DBWriteTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	MigrationDirectory() string
	DSN() string
	MaxConns() int32
}

type Cache interface {
	Enabled() bool
	Address() string
	Password() string
	DB() int
	BalanceTTL() time.Duration
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	WebhookTopic() string
	WebhookConsumerGroupID() string
	BalanceCreditedTopic() string
	WebhookConsumerConfig() *sarama.Config
	BalanceCreditedProducerConfig() *sarama.Config
	BreakerFailureThreshold() uint32
	BreakerTimeout() time.Duration
}
