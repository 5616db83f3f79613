package consumer

import (
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nazarijbeketovv/tech-assignment-payments/platform/kafka"
)

const (
	defaultHandlerAttempts = 3
	defaultHandlerBackoff  = 500 * time.Millisecond
)

type groupHandler struct {
	handler  kafka.MessageHandler
	logger   Logger
	attempts int
	backoff  time.Duration
}

// NewGroupHandler wraps handler with middlewares, the first one outermost.
func NewGroupHandler(handler kafka.MessageHandler, logger Logger, middlewares ...kafka.Middleware) *groupHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return &groupHandler{
		handler:  handler,
		logger:   logger,
		attempts: defaultHandlerAttempts,
		backoff:  defaultHandlerBackoff,
	}
}

func (g *groupHandler) Setup(sess sarama.ConsumerGroupSession) error {
	g.logger.Info(sess.Context(), "kafka session started",
		zap.String("member_id", sess.MemberID()),
		zap.Int32("generation", sess.GenerationID()),
	)
	return nil
}

func (g *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks a record only after the handler succeeded. A record
// that still fails after the retries ends the claim unmarked, so the group
// re-fetches it from the last committed offset after the rebalance.
func (g *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				g.logger.Info(session.Context(), "kafka message channel closed")
				return nil
			}

			msg := toMessage(message)
			if err := g.handle(session, msg); err != nil {
				if session.Context().Err() != nil {
					return nil
				}
				g.logger.Error(session.Context(), "kafka handler gave up, record left unmarked",
					zap.String("topic", msg.Topic),
					zap.Int32("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
				return errors.Wrapf(err, "handle %s/%d@%d", msg.Topic, msg.Partition, msg.Offset)
			}

			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (g *groupHandler) handle(session sarama.ConsumerGroupSession, msg kafka.Message) error {
	ctx := session.Context()

	var err error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		if err = g.handler(ctx, msg); err == nil {
			return nil
		}

		g.logger.Error(ctx, "kafka handler error",
			zap.String("topic", msg.Topic),
			zap.Int32("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt == g.attempts {
			break
		}

		select {
		case <-time.After(g.backoff * time.Duration(attempt)):
		case <-ctx.Done():
			return err
		}
	}

	return err
}

func toMessage(m *sarama.ConsumerMessage) kafka.Message {
	return kafka.Message{
		Key:            m.Key,
		Value:          m.Value,
		Topic:          m.Topic,
		Partition:      m.Partition,
		Offset:         m.Offset,
		Timestamp:      m.Timestamp,
		BlockTimestamp: m.BlockTimestamp,
		Headers:        extractHeaders(m.Headers),
	}
}

func extractHeaders(headers []*sarama.RecordHeader) map[string][]byte {
	result := make(map[string][]byte, len(headers))
	for _, h := range headers {
		if h != nil && h.Key != nil {
			result[string(h.Key)] = h.Value
		}
	}

	return result
}
