package redis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// KeyValueStore is the Redis-backed persistent KV surface for per-user values
// (cached ID token, role, account, username). It intentionally degrades
// silently: an unreachable Redis must never break sign-in, so Set failures
// are logged at debug level and Get reports absence.
type KeyValueStore struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// NewKeyValueStore creates a KV store namespaced under "nftheater:".
func NewKeyValueStore(client redis.UniversalClient, logger *slog.Logger) *KeyValueStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeyValueStore{
		client: client,
		prefix: "nftheater:",
		logger: logger,
	}
}

// Set stores the value. Failures are swallowed after a debug log.
func (s *KeyValueStore) Set(ctx context.Context, key, value string) {
	if key == "" {
		return
	}
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		s.logger.DebugContext(ctx, "kv set failed", "key", key, "error", err)
	}
}

// Get returns the value and true when present. Absence and storage failures
// are indistinguishable to the caller; both report ("", false).
func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.DebugContext(ctx, "kv get failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

// Delete removes the given keys. Failures are swallowed after a debug log.
func (s *KeyValueStore) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.prefix + k
	}
	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		s.logger.DebugContext(ctx, "kv delete failed", "keys", keys, "error", err)
	}
}
