// Package cachetest provides an in-process cache.Service for tests.
package cachetest

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"courtly/pkg/cache"
)

// Memory stores JSON payloads in a map. TTLs are recorded, not enforced.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
	TTLs map[string]time.Duration

	Gets   int
	Hits   int
	Writes int
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}, TTLs: map[string]time.Duration{}}
}

var _ cache.Service = (*Memory)(nil)

func (m *Memory) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	m.Hits++
	return json.Unmarshal(raw, dest)
}

func (m *Memory) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	m.data[key] = raw
	m.TTLs[key] = ttl
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *Memory) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *Memory) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	value, err := fetcher()
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return cache.Decode(value, dest)
}

// Has reports whether key is currently stored.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}
