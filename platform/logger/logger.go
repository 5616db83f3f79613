package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxFieldsKey struct{}

type logger struct {
	zapLogger *zap.Logger
}

var (
	globalLogger = &logger{zapLogger: zap.NewNop()}
	initOnce     sync.Once
	mu           sync.RWMutex
)

// Init builds the global zap logger. Later calls are no-ops.
func Init(levelStr string, asJSON bool) error {
	var initErr error

	initOnce.Do(func() {
		level := zapcore.InfoLevel
		if err := level.Set(strings.ToLower(levelStr)); err != nil {
			initErr = err
			return
		}

		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "timestamp"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

		var encoder zapcore.Encoder
		if asJSON {
			encoder = zapcore.NewJSONEncoder(encCfg)
		} else {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
			encoder = zapcore.NewConsoleEncoder(encCfg)
		}

		core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(level))

		mu.Lock()
		globalLogger = &logger{zapLogger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
		mu.Unlock()
	})

	return initErr
}

// L returns the global logger.
func L() *logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// SetNopLogger silences the global logger. Used by tests.
func SetNopLogger() {
	mu.Lock()
	globalLogger = &logger{zapLogger: zap.NewNop()}
	mu.Unlock()
}

// Sync flushes buffered entries.
func Sync() error {
	return L().zapLogger.Sync()
}

// With returns a child of the global logger carrying fields.
func With(fields ...Field) *logger {
	return L().With(fields...)
}

// WithContextFields stores fields in ctx. Every log call made with the
// returned context includes them.
func WithContextFields(ctx context.Context, fields ...Field) context.Context {
	existing := fieldsFromContext(ctx)
	merged := make([]Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxFieldsKey{}, merged)
}

func fieldsFromContext(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxFieldsKey{}).([]Field)
	return fields
}

func Debug(ctx context.Context, msg string, fields ...Field) { L().Debug(ctx, msg, fields...) }
func Info(ctx context.Context, msg string, fields ...Field)  { L().Info(ctx, msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...Field)  { L().Warn(ctx, msg, fields...) }
func Error(ctx context.Context, msg string, fields ...Field) { L().Error(ctx, msg, fields...) }

func (l *logger) With(fields ...Field) *logger {
	return &logger{zapLogger: l.zapLogger.With(fields...)}
}

func (l *logger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.zapLogger.Debug(msg, append(fieldsFromContext(ctx), fields...)...)
}

func (l *logger) Info(ctx context.Context, msg string, fields ...Field) {
	l.zapLogger.Info(msg, append(fieldsFromContext(ctx), fields...)...)
}

func (l *logger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.zapLogger.Warn(msg, append(fieldsFromContext(ctx), fields...)...)
}

func (l *logger) Error(ctx context.Context, msg string, fields ...Field) {
	l.zapLogger.Error(msg, append(fieldsFromContext(ctx), fields...)...)
}
