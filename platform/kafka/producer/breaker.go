package producer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/nazarijbeketovv/tech-assignment-payments/platform/kafka"
)

var ErrBreakerOpen = errors.New("producer circuit breaker is open")

type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

type breakerProducer struct {
	next   kafka.Producer
	cb     *gobreaker.CircuitBreaker
	logger Logger
}

// NewBreakerProducer stops calling next after FailureThreshold consecutive
// failures and retries after Timeout.
func NewBreakerProducer(next kafka.Producer, s BreakerSettings, logger Logger) *breakerProducer {
	settings := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info(context.Background(), "circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &breakerProducer{
		next:   next,
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: logger,
	}
}

func (p *breakerProducer) Send(ctx context.Context, key, value []byte) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.next.Send(ctx, key, value)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrBreakerOpen
	}

	return err
}

func (p *breakerProducer) State() gobreaker.State {
	return p.cb.State()
}
