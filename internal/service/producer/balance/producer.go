package balproducer

import (
	"context"
	"fmt"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/kafka"
)

type Converter interface {
	BalanceCreditedToPayload(e model.BalanceCredited) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
}

func NewBalanceProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

// SendBalanceCredited publishes the event keyed by the organization INN so
// that all credits of one organization land in the same partition.
func (s *service) SendBalanceCredited(ctx context.Context, event model.BalanceCredited) error {
	payload, err := s.conv.BalanceCreditedToPayload(event)
	if err != nil {
		return fmt.Errorf("converter balance_credited_to_payload error: %w", err)
	}

	if err := s.producer.Send(ctx, []byte(event.INN), payload); err != nil {
		return fmt.Errorf("producer to balance.credited topic error: %w", err)
	}

	return nil
}
