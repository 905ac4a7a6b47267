package services

import (
	"bytes"
	"testing"

	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailerSendFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.L
	logger.L = logger.New(&buf, "production")
	t.Cleanup(func() { logger.L = prev })

	m := NewMailer(Config{Host: "127.0.0.1", Port: "1", From: "shop@example.com"})
	err := m.SendHTMLEmail("buyer@example.com", "Hello", "<p>hi</p>")
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"msg":"Mailer.SendHTMLEmail: send failed"`)
	assert.Contains(t, buf.String(), `"to":"buyer@example.com"`)
}
