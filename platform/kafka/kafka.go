package kafka

import (
	"context"
)

type (
	Middleware     func(next MessageHandler) MessageHandler
	MessageHandler func(ctx context.Context, msg Message) error
)

// Consumer reads from a set of topics until ctx is cancelled or the
// underlying group is closed.
type Consumer interface {
	Consume(ctx context.Context, handler MessageHandler) error
}

// Producer publishes to a single pre-configured topic.
type Producer interface {
	Send(ctx context.Context, key, value []byte) error
}
