package whconsumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/kafka"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/logger"
)

type Converter interface {
	WebhookPayloadToRequest(data []byte) (model.WebhookRequest, error)
}

type Service interface {
	ProcessWebhook(ctx context.Context, req model.WebhookRequest) (*model.ProcessResult, error)
}

type service struct {
	consumer kafka.Consumer
	conv     Converter
	svc      Service
}

func NewWebhookConsumer(
	consumer kafka.Consumer,
	conv Converter,
	svc Service,
) *service {
	return &service{consumer: consumer, conv: conv, svc: svc}
}

func (s *service) RunWebhookConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting bank webhook consumer")

	if err := s.consumer.Consume(ctx, s.webhookHandler); err != nil {
		logger.Error(ctx, "Consume from bank.webhooks topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

// webhookHandler returns nil for outcomes a redelivery cannot change, so
// the message gets marked. Storage failures are returned and retried.
func (s *service) webhookHandler(ctx context.Context, msg kafka.Message) error {
	ctx = logger.WithContextFields(ctx,
		logger.String("topic", msg.Topic),
		logger.Int32("partition", msg.Partition),
		logger.Int64("offset", msg.Offset),
	)

	req, err := s.conv.WebhookPayloadToRequest(msg.Value)
	if err != nil {
		logger.Warn(ctx, "Dropping undecodable webhook", logger.ErrorF(err))
		return nil
	}

	res, err := s.svc.ProcessWebhook(ctx, req)
	switch {
	case err == nil:
		logger.Debug(ctx, "webhook processed", logger.String("status", string(res.Status)))
		return nil
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrOrganizationNotFound),
		errors.Is(err, model.ErrDuplicateDocument),
		errors.Is(err, model.ErrBalanceOverflow):
		logger.Warn(ctx, "Dropping rejected webhook", logger.ErrorF(err))
		return nil
	default:
		logger.Error(ctx, "consumer.ProcessWebhook", logger.ErrorF(err))
		return fmt.Errorf("process webhook: %w", err)
	}
}
