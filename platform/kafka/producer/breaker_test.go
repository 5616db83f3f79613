package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazarijbeketovv/tech-assignment-payments/platform/logger"
)

type fakeProducer struct {
	calls int
	err   error
}

func (f *fakeProducer) Send(ctx context.Context, key, value []byte) error {
	f.calls++
	return f.err
}

func TestBreakerProducerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	next := &fakeProducer{err: errors.New("broker down")}
	p := NewBreakerProducer(next, BreakerSettings{
		Name:             "test",
		MaxRequests:      1,
		Timeout:          time.Minute,
		FailureThreshold: 2,
	}, logger.NoopLogger{})

	ctx := context.Background()
	require.Error(t, p.Send(ctx, []byte("k"), []byte("v")))
	require.Error(t, p.Send(ctx, []byte("k"), []byte("v")))

	err := p.Send(ctx, []byte("k"), []byte("v"))
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.Equal(t, 2, next.calls)
	assert.Equal(t, gobreaker.StateOpen, p.State())
}

func TestBreakerProducerPassesThrough(t *testing.T) {
	t.Parallel()

	next := &fakeProducer{}
	p := NewBreakerProducer(next, BreakerSettings{Name: "test", FailureThreshold: 1}, logger.NoopLogger{})

	require.NoError(t, p.Send(context.Background(), []byte("k"), []byte("v")))
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, gobreaker.StateClosed, p.State())
}
