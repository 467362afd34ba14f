package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextHelpers(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUserID(ctx, "user-1")

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestLoggerChaining(t *testing.T) {
	log := NewLogger("test", "debug")

	assert.Same(t, log, log.WithContext(context.Background()))

	ctx := ContextWithRequestID(context.Background(), "req-1")
	assert.NotSame(t, log, log.WithContext(ctx))

	assert.NotPanics(t, func() {
		log.Named("bet").WithField("k", "v").WithFields(map[string]interface{}{"a": 1}).Debug("chained")
		NewNop().Info("discarded")
	})
}

func TestNewLoggerIgnoresUnknownLevel(t *testing.T) {
	assert.NotPanics(t, func() {
		NewLogger("production", "verbose").Info("still logs at default level")
	})
}
