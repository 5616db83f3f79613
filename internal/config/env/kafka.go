package envconfig

import (
	"time"

	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Enabled                  bool          `env:"KAFKA_ENABLED" envDefault:"true"`
	Brokers                  []string      `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	WebhookTopicName         string        `env:"BANK_WEBHOOK_TOPIC_NAME" envDefault:"bank.webhooks"`
	WebhookConsumerGroupID   string        `env:"BANK_WEBHOOK_CONSUMER_GROUP_ID" envDefault:"payments-bank-webhooks"`
	BalanceCreditedTopicName string        `env:"BALANCE_CREDITED_TOPIC_NAME" envDefault:"balance.credited"`
	BreakerFailureThreshold  uint32        `env:"KAFKA_BREAKER_FAILURE_THRESHOLD" envDefault:"5"`
	BreakerTimeout           time.Duration `env:"KAFKA_BREAKER_TIMEOUT" envDefault:"30s"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Enabled() bool                   { return cfg.raw.Enabled }
func (cfg *kafka) Brokers() []string               { return cfg.raw.Brokers }
func (cfg *kafka) WebhookTopic() string            { return cfg.raw.WebhookTopicName }
func (cfg *kafka) WebhookConsumerGroupID() string  { return cfg.raw.WebhookConsumerGroupID }
func (cfg *kafka) BalanceCreditedTopic() string    { return cfg.raw.BalanceCreditedTopicName }
func (cfg *kafka) BreakerFailureThreshold() uint32 { return cfg.raw.BreakerFailureThreshold }
func (cfg *kafka) BreakerTimeout() time.Duration   { return cfg.raw.BreakerTimeout }

func (cfg *kafka) WebhookConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	return config
}

func (cfg *kafka) BalanceCreditedProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	return config
}
