package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-seatmap/internal/logger"
)

// Store persists selections per venue and owner.
type Store interface {
	Save(ctx context.Context, venueID, owner string, ids []string) error
	Load(ctx context.Context, venueID, owner string) ([]string, error)
	Remove(ctx context.Context, venueID, owner string) error
}

// RedisStore keeps each selection as a JSON array of seat ids.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a store writing keys with the given ttl (no expiry
// when ttl <= 0).
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if rdb == nil {
		panic("nil redis client passed to NewRedisStore")
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Key is the redis key of a selection.
func Key(venueID, owner string) string {
	return fmt.Sprintf("venue-seats-%s:%s", venueID, owner)
}

// Save stores ids; an empty selection deletes the key.
func (s *RedisStore) Save(ctx context.Context, venueID, owner string, ids []string) error {
	key := Key(venueID, owner)
	if len(ids) == 0 {
		return s.rdb.Del(ctx, key).Err()
	}
	body, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	return s.rdb.Set(ctx, key, body, ttl).Err()
}

// Load returns the stored ids, or none.  A corrupted value is removed and
// treated as an empty selection.
func (s *RedisStore) Load(ctx context.Context, venueID, owner string) ([]string, error) {
	key := Key(venueID, owner)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		logger.FromContext(ctx).Warn("dropping corrupted selection", "key", key, "error", err)
		_ = s.Remove(ctx, venueID, owner)
		return nil, nil
	}
	return ids, nil
}

func (s *RedisStore) Remove(ctx context.Context, venueID, owner string) error {
	return s.rdb.Del(ctx, Key(venueID, owner)).Err()
}

// MemoryStore keeps selections in process memory.  It is used when Redis is
// not configured; selections are lost on restart.
type MemoryStore struct {
	mu   sync.Mutex
	sets map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: map[string][]string{}}
}

func (s *MemoryStore) Save(_ context.Context, venueID, owner string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) == 0 {
		delete(s.sets, Key(venueID, owner))
		return nil
	}
	s.sets[Key(venueID, owner)] = slices.Clone(ids)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, venueID, owner string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sets[Key(venueID, owner)]), nil
}

func (s *MemoryStore) Remove(_ context.Context, venueID, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, Key(venueID, owner))
	return nil
}
