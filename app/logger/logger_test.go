package logger_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/stretchr/testify/assert"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))
}

func TestInjectedLoggerIsReturned(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, "production").With("request_id", "abc")
	ctx := logger.Inject(context.Background(), l)

	logger.WithCtx(ctx).Info("order created")

	assert.Contains(t, buf.String(), `"request_id":"abc"`)
	assert.Contains(t, buf.String(), `"msg":"order created"`)
}
