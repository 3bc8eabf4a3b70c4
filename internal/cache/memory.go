package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryProvider is an in-process Provider with per-key TTLs and LRU
// eviction once maxEntries is reached.
type MemoryProvider struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
	now        func() time.Time
}

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// NewMemoryProvider creates an in-memory cache. maxEntries <= 0 means unbounded.
func NewMemoryProvider(maxEntries int) *MemoryProvider {
	return &MemoryProvider{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns a copy of the cached bytes or ErrCacheMiss.
func (m *MemoryProvider) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.lookup(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	m.order.MoveToFront(el)
	return append([]byte(nil), el.Value.(*memoryEntry).value...), nil
}

// Set stores value under key. A non-positive ttl never expires.
func (m *MemoryProvider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(key, value, ttl)
	return nil
}

// SetNX stores value only when key is absent or expired.
func (m *MemoryProvider) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lookup(key); ok {
		return false, nil
	}
	m.store(key, value, ttl)
	return true, nil
}

// Del removes key.
func (m *MemoryProvider) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.entries[key]; ok {
		m.remove(el)
	}
	return nil
}

// Len reports the number of live entries.
func (m *MemoryProvider) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// Close drops every entry.
func (m *MemoryProvider) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*list.Element)
	m.order.Init()
	return nil
}

// lookup returns the live element for key, evicting it if expired.
func (m *MemoryProvider) lookup(key string) (*list.Element, bool) {
	el, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.remove(el)
		return nil, false
	}
	return el, true
}

func (m *MemoryProvider) store(key string, value []byte, ttl time.Duration) {
	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}
	entry := &memoryEntry{key: key, value: append([]byte(nil), value...), expiresAt: expires}

	if el, ok := m.entries[key]; ok {
		el.Value = entry
		m.order.MoveToFront(el)
		return
	}
	m.entries[key] = m.order.PushFront(entry)
	for m.maxEntries > 0 && m.order.Len() > m.maxEntries {
		m.remove(m.order.Back())
	}
}

func (m *MemoryProvider) remove(el *list.Element) {
	m.order.Remove(el)
	delete(m.entries, el.Value.(*memoryEntry).key)
}
