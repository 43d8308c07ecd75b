package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DraftStore persists one in-progress draft per operator. Save is invoked
// after every mutation; Clear is invoked exactly on successful submission or
// explicit cancellation — never on mere navigation away, so an accidental
// exit stays recoverable.
type DraftStore interface {
	Load(ctx context.Context, operatorID string) (*Draft, bool, error)
	Save(ctx context.Context, operatorID string, d *Draft) error
	Clear(ctx context.Context, operatorID string) error
}

// ── Redis store ───────────────────────────────────────────────────────────────

const (
	draftKeyPrefix = "onboarding:draft:"
	// Drafts linger for a week; long enough to survive a weekend, short
	// enough not to accumulate abandoned wizards forever.
	draftTTL = 7 * 24 * time.Hour
)

type redisDraftStore struct{ rdb *redis.Client }

// NewRedisDraftStore returns the production DraftStore backed by Redis.
func NewRedisDraftStore(rdb *redis.Client) DraftStore {
	return &redisDraftStore{rdb: rdb}
}

func (s *redisDraftStore) key(operatorID string) string {
	return draftKeyPrefix + operatorID
}

func (s *redisDraftStore) Load(ctx context.Context, operatorID string) (*Draft, bool, error) {
	raw, err := s.rdb.Get(ctx, s.key(operatorID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("draft store: load: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, false, fmt.Errorf("draft store: decode: %w", err)
	}
	return &d, true, nil
}

func (s *redisDraftStore) Save(ctx context.Context, operatorID string, d *Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft store: encode: %w", err)
	}
	return s.rdb.Set(ctx, s.key(operatorID), raw, draftTTL).Err()
}

func (s *redisDraftStore) Clear(ctx context.Context, operatorID string) error {
	return s.rdb.Del(ctx, s.key(operatorID)).Err()
}

// ── In-memory store ───────────────────────────────────────────────────────────

// MemoryDraftStore is a map-backed DraftStore for tests. Snapshots are
// stored serialized so restore semantics match the Redis store exactly.
type MemoryDraftStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{blobs: make(map[string][]byte)}
}

func (s *MemoryDraftStore) Load(_ context.Context, operatorID string) (*Draft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.blobs[operatorID]
	if !ok {
		return nil, false, nil
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, false, err
	}
	return &d, true, nil
}

func (s *MemoryDraftStore) Save(_ context.Context, operatorID string, d *Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.blobs[operatorID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Clear(_ context.Context, operatorID string) error {
	s.mu.Lock()
	delete(s.blobs, operatorID)
	s.mu.Unlock()
	return nil
}
