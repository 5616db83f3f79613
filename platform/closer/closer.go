package closer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type namedFunc struct {
	name string
	fn   func(ctx context.Context) error
}

type Closer struct {
	mu     sync.Mutex
	once   sync.Once
	funcs  []namedFunc
	logger Logger
}

var globalCloser = New()

// New returns an empty closer with a silent logger.
func New() *Closer {
	return &Closer{logger: nopLogger{}}
}

func SetLogger(l Logger)                                       { globalCloser.SetLogger(l) }
func Add(fns ...func(ctx context.Context) error)               { globalCloser.Add(fns...) }
func AddNamed(name string, fn func(ctx context.Context) error) { globalCloser.AddNamed(name, fn) }
func CloseAll(ctx context.Context) error                       { return globalCloser.CloseAll(ctx) }

func (c *Closer) SetLogger(l Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

func (c *Closer) Add(fns ...func(ctx context.Context) error) {
	for _, fn := range fns {
		c.AddNamed("func", fn)
	}
}

func (c *Closer) AddNamed(name string, fn func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, namedFunc{name: name, fn: fn})
}

// CloseAll runs the registered functions in reverse order of registration.
// Only the first call does any work.
func (c *Closer) CloseAll(ctx context.Context) error {
	var result error

	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.funcs = nil
		log := c.logger
		c.mu.Unlock()

		if len(funcs) == 0 {
			log.Info(ctx, "nothing to close")
			return
		}

		log.Info(ctx, "🚦 starting graceful shutdown", zap.Int("resources", len(funcs)))

		var errs []error
		for i := len(funcs) - 1; i >= 0; i-- {
			f := funcs[i]
			start := time.Now()

			if err := c.call(ctx, f); err != nil {
				log.Error(ctx, "❌ failed to close resource",
					zap.String("name", f.name),
					zap.Error(err),
					zap.Duration("duration", time.Since(start)),
				)
				errs = append(errs, err)
				continue
			}

			log.Info(ctx, "✅ resource closed",
				zap.String("name", f.name),
				zap.Duration("duration", time.Since(start)),
			)
		}

		result = errors.Join(errs...)
	})

	return result
}

func (c *Closer) call(ctx context.Context, f namedFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("panic while closing " + f.name)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	return f.fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...zap.Field)  {}
func (nopLogger) Error(context.Context, string, ...zap.Field) {}
