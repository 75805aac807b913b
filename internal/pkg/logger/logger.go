package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey struct{}

var global *zap.Logger

func init() {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	global = l
}

// SetLogger replaces the package logger, used by tests and by main to switch
// to a development config.
func SetLogger(l *zap.Logger) {
	global = l
}

// WithRequestID returns ctx annotated with a fresh request id. Every log call
// made with the returned ctx carries the id.
func WithRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, uuid.NewString())
}

func fromCtx(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if id, ok := ctx.Value(ctxKey{}).(string); ok {
			return global.With(zap.String("request_id", id))
		}
	}
	return global
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	fromCtx(ctx).Info(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	fromCtx(ctx).Error(msg, fields...)
}

func Fatal(ctx context.Context, err error) {
	fromCtx(ctx).Fatal(err.Error())
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Sugar().Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Sugar().Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Sugar().Errorf(format, args...)
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Sugar().Debugf(format, args...)
}
