package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOTPStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryOTPStore()

	got, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Save(ctx, "a@example.com", OTPEntry{OTP: "123456", Timestamp: time.Now()}))
	n, err := store.IncrementAttempts(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err = store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "123456", got.OTP)
	assert.Equal(t, 1, got.Attempts)

	require.NoError(t, store.Delete(ctx, "a@example.com"))
	assert.Equal(t, 0, store.Len())
}

func TestMemoryOTPStoreSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryOTPStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "old@example.com", OTPEntry{OTP: "1", Timestamp: now.Add(-11 * time.Minute)}))
	require.NoError(t, store.Save(ctx, "new@example.com", OTPEntry{OTP: "2", Timestamp: now.Add(-time.Minute)}))

	assert.Equal(t, 1, store.Sweep(OTPTTL))
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, "new@example.com")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0])
	}
}
