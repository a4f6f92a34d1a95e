// Package qcache caches processed query results keyed by normalized
// text and language. Two backends exist: an in-process LRU and a
// Redis-backed store for sharing across replicas.
package qcache

import (
	"container/list"
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/querylens/internal/domain"
)

// DefaultCapacity bounds the in-memory cache when the configured
// capacity is zero.
const DefaultCapacity = 256

// Memory is a bounded LRU cache. Safe for concurrent use.
type Memory struct {
	mu         sync.Mutex
	capacity   int
	order      *list.List
	entries    map[string]*list.Element
	cacheTotal *prometheus.CounterVec
}

type memoryEntry struct {
	key    string
	result domain.VoiceSearchResult
}

// NewMemory creates an LRU cache holding up to capacity results.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"); nil
// disables counting.
func NewMemory(capacity int, cacheTotal *prometheus.CounterVec) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		capacity:   capacity,
		order:      list.New(),
		entries:    make(map[string]*list.Element, capacity),
		cacheTotal: cacheTotal,
	}
}

// Get returns the cached result for the (language, normalized text)
// pair and marks it most recently used.
func (m *Memory) Get(_ context.Context, lang domain.Language, text string) (domain.VoiceSearchResult, bool) {
	key := entryKey(lang, text)

	m.mu.Lock()
	defer m.mu.Unlock()
	elem, ok := m.entries[key]
	if !ok {
		m.incCache("miss")
		return domain.VoiceSearchResult{}, false
	}
	m.order.MoveToFront(elem)
	m.incCache("hit")
	return elem.Value.(*memoryEntry).result, true
}

// Put stores a result, evicting the least recently used entry when the
// cache is full.
func (m *Memory) Put(_ context.Context, lang domain.Language, text string, result domain.VoiceSearchResult) {
	key := entryKey(lang, text)

	m.mu.Lock()
	defer m.mu.Unlock()
	if elem, ok := m.entries[key]; ok {
		elem.Value.(*memoryEntry).result = result
		m.order.MoveToFront(elem)
		return
	}
	m.entries[key] = m.order.PushFront(&memoryEntry{key: key, result: result})
	if m.order.Len() > m.capacity {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.entries, oldest.Value.(*memoryEntry).key)
	}
}

// Len reports the number of cached entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *Memory) incCache(result string) {
	if m.cacheTotal != nil {
		m.cacheTotal.WithLabelValues(result).Inc()
	}
}

func entryKey(lang domain.Language, text string) string {
	return string(lang) + "\x00" + text
}
