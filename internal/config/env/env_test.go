package envconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPServerDefaults(t *testing.T) {
	cfg, err := NewHTTPServerConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Address())
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout())
}

func TestPostgresRequiresHost(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_DB", "payments")

	_, err := NewPostgresConfig()
	require.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_USER", "payments")
	t.Setenv("POSTGRES_PASSWORD", "p@ss")
	t.Setenv("POSTGRES_DB", "payments")

	cfg, err := NewPostgresConfig()
	require.NoError(t, err)

	assert.Equal(t,
		"postgres://payments:p%40ss@db:5433/payments?sslmode=disable&pool_max_conns=10",
		cfg.DSN(),
	)
	assert.Equal(t, "migrations", cfg.MigrationDirectory())
}

func TestKafkaBrokersList(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := NewKafkaConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers())
	assert.Equal(t, "bank.webhooks", cfg.WebhookTopic())
	assert.True(t, cfg.BalanceCreditedProducerConfig().Producer.Return.Successes)
}
