package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() {
		log = previous
	})
	return logs
}

func TestInitialize(t *testing.T) {
	previous := log
	t.Cleanup(func() {
		log = previous
	})

	require.NoError(t, Initialize(Config{Debug: true}))
	assert.NotNil(t, Default())
	assert.True(t, Default().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Initialize(Config{Debug: false}))
	assert.False(t, Default().Core().Enabled(zapcore.DebugLevel))
}

func TestWithFields_AddsFieldsToCtxLogs(t *testing.T) {
	logs := withObservedLogger(t)

	ctx := WithFields(context.Background(), RequestID("req-1"))
	ctx = WithFields(ctx, Listing("listing-1"))

	ErrorCtx(ctx, errors.New("failed to increment daily analytics"),
		SessionToken("token-1"),
		Day(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to increment daily analytics", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields[FieldRequestID])
	assert.Equal(t, "listing-1", fields[FieldListingID])
	assert.Equal(t, "token-1", fields[FieldSessionToken])
	assert.Equal(t, "2024-03-09", fields[FieldDate])
}

func TestWithFields_DoesNotLeakIntoParent(t *testing.T) {
	logs := withObservedLogger(t)

	parent := WithFields(context.Background(), Listing("listing-1"))
	_ = WithFields(parent, SessionToken("token-1"))

	InfoCtx(parent, "scan tracked")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Contains(t, fields, FieldListingID)
	assert.NotContains(t, fields, FieldSessionToken)
}

func TestError_NilError(t *testing.T) {
	logs := withObservedLogger(t)

	Error(nil, EventKind("scan"))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "error occurred", logs.All()[0].Message)
}
