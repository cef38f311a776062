// Package cache provides the derived-view cache used for order reads and
// aggregate statistics, with explicit bucket-level eviction.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache stores serialized derived views under bucket/key pairs. Mutating
// operations on orders evict the buckets they touch; nothing is invalidated
// implicitly.
type Cache interface {
	Get(ctx context.Context, bucket, key string) (string, bool, error)
	Set(ctx context.Context, bucket, key, value string, ttl time.Duration) error
	Evict(ctx context.Context, bucket, key string) error
	EvictBucket(ctx context.Context, bucket string) error
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is a process-local Cache used in tests and cache-less deployments.
type Memory struct {
	mu      sync.RWMutex
	buckets map[string]map[string]memoryEntry
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{buckets: make(map[string]map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, bucket, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.buckets[bucket][key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, bucket, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.buckets[bucket] == nil {
		m.buckets[bucket] = make(map[string]memoryEntry)
	}
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.buckets[bucket][key] = entry
	return nil
}

func (m *Memory) Evict(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets[bucket], key)
	return nil
}

func (m *Memory) EvictBucket(_ context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets, bucket)
	return nil
}
