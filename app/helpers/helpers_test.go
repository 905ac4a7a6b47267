package helpers

import (
	"bytes"
	"testing"

	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordCompareLogsMismatchThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.L
	logger.L = logger.New(&buf, "development")
	t.Cleanup(func() { logger.L = prev })

	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, PasswordCompare(hash, []byte("correct-horse")))
	assert.Empty(t, buf.String())

	assert.False(t, PasswordCompare(hash, []byte("wrong")))
	assert.Contains(t, buf.String(), "PasswordCompare: password does not match")
	assert.Contains(t, buf.String(), "level=DEBUG")
}
