package redis

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	tcconst "github.com/nazarijbeketovv/tech-assignment-payments/platform/testcontainers"
)

const redisStartupTimeout = 1 * time.Minute

func startRedisContainer(ctx context.Context, cfg *Config) (testcontainers.Container, error) {
	cmd := []string{"redis-server", "--save", "", "--appendonly", "no"}
	if cfg.Password != "" {
		cmd = append(cmd, "--requirepass", cfg.Password)
	}

	req := testcontainers.ContainerRequest{
		Name:               cfg.ContainerName,
		Image:              cfg.ImageName,
		Cmd:                cmd,
		ExposedPorts:       []string{tcconst.RedisPort + "/tcp"},
		WaitingFor:         wait.ForListeningPort(tcconst.RedisPort + "/tcp").WithStartupTimeout(redisStartupTimeout),
		HostConfigModifier: defaultHostConfig(),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, errors.Errorf("failed to start redis container: %v", err)
	}

	return c, nil
}

func getContainerHostPort(ctx context.Context, c testcontainers.Container) (string, string, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return "", "", errors.Errorf("failed to get container host: %v", err)
	}

	port, err := c.MappedPort(ctx, tcconst.RedisPort+"/tcp")
	if err != nil {
		return "", "", errors.Errorf("failed to get mapped port: %v", err)
	}

	return host, port.Port(), nil
}

func connectRedisClient(ctx context.Context, cfg *Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Errorf("failed to ping redis: %v", err)
	}

	return client, nil
}
