package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	OTPTTL         = 10 * time.Minute
	OTPMaxAttempts = 3
)

// OTPEntry is a pending signup code for one email address.
type OTPEntry struct {
	OTP       string    `json:"otp"`
	Timestamp time.Time `json:"timestamp"`
	Attempts  int       `json:"attempts"`
}

type OTPStore interface {
	Save(ctx context.Context, email string, entry OTPEntry) error
	Get(ctx context.Context, email string) (*OTPEntry, error)
	IncrementAttempts(ctx context.Context, email string) (int, error)
	Delete(ctx context.Context, email string) error
}

// MemoryOTPStore keeps codes in process memory. It is safe for concurrent
// use and only suits single-instance deployments.
type MemoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]OTPEntry
	now     func() time.Time
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{entries: make(map[string]OTPEntry), now: time.Now}
}

func (s *MemoryOTPStore) Save(_ context.Context, email string, entry OTPEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry
	return nil
}

func (s *MemoryOTPStore) Get(_ context.Context, email string) (*OTPEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *MemoryOTPStore) IncrementAttempts(_ context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	if !ok {
		return 0, nil
	}
	entry.Attempts++
	s.entries[email] = entry
	return entry.Attempts, nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

// Sweep drops entries older than ttl and returns how many were removed.
func (s *MemoryOTPStore) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-ttl)
	removed := 0
	for email, entry := range s.entries {
		if entry.Timestamp.Before(cutoff) {
			delete(s.entries, email)
			removed++
		}
	}
	return removed
}

func (s *MemoryOTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RunSweeper sweeps expired entries every interval until ctx is done.
func (s *MemoryOTPStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(OTPTTL)
		}
	}
}

// RedisOTPStore shares codes across instances. Keys expire with the OTP TTL
// so abandoned codes never accumulate.
type RedisOTPStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisOTPStore(rdb *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{rdb: rdb, prefix: "otp:"}
}

func (s *RedisOTPStore) key(email string) string { return s.prefix + email }

func (s *RedisOTPStore) Save(ctx context.Context, email string, entry OTPEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key(email), data, OTPTTL).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Get(ctx context.Context, email string) (*OTPEntry, error) {
	val, err := s.rdb.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read otp: %w", err)
	}
	var entry OTPEntry
	if err := json.Unmarshal(val, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode otp: %w", err)
	}
	return &entry, nil
}

func (s *RedisOTPStore) IncrementAttempts(ctx context.Context, email string) (int, error) {
	entry, err := s.Get(ctx, email)
	if err != nil || entry == nil {
		return 0, err
	}
	entry.Attempts++
	ttl, err := s.rdb.TTL(ctx, s.key(email)).Result()
	if err != nil || ttl <= 0 {
		ttl = OTPTTL
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return 0, err
	}
	if err := s.rdb.Set(ctx, s.key(email), data, ttl).Err(); err != nil {
		return 0, fmt.Errorf("failed to update otp attempts: %w", err)
	}
	return entry.Attempts, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, s.key(email)).Err()
}
