package testcontainers

// Postgres constants
const (
	PostgresImage        = "postgres:17.0-alpine3.20"
	PostgresPort         = "5432"
	PostgresDatabase     = "payments"
	PostgresUsername     = "payments"
	PostgresPassword     = "payments" //nolint:gosec
	PostgresMigrationDir = "migrations"
)

// Redis constants
const (
	RedisImage         = "redis:7.4-alpine"
	RedisPort          = "6379"
	RedisContainerName = "redis"
)

// Kafka constants
const (
	KafkaImage     = "confluentinc/cp-kafka:7.6.1"
	KafkaClusterID = "Mk3OEYBSD34fcwNTJENDM2Qk"
)
