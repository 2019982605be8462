package sdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFrom(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()

	ctx := WithLogger(context.Background(), logger)
	LoggerFrom(ctx).Infof("proposed %s", "DevFee")
	LoggerFrom(ctx).Debugf("dropped below level")

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "proposed DevFee", logs.All()[0].Message)
}

func TestLoggerFrom_Default(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, LoggerFrom(context.Background()))
}
