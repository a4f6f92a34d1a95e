package qcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/querylens/internal/db"
	"github.com/kailas-cloud/querylens/internal/domain"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn    func(ctx context.Context, key string) ([]byte, error)
	setFn    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	setCalls int
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.setCalls++
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func sampleResult(q string) domain.VoiceSearchResult {
	return domain.VoiceSearchResult{
		OriginalText:   q,
		ProcessedQuery: q,
		Expanded:       []string{q},
	}
}

func TestMemoryGetMiss(t *testing.T) {
	c := NewMemory(4, nil)
	if _, ok := c.Get(context.Background(), domain.LangEnglish, "action movies"); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestMemoryPutGet(t *testing.T) {
	c := NewMemory(4, nil)
	want := sampleResult("action movies")
	c.Put(context.Background(), domain.LangEnglish, "action movies", want)

	got, ok := c.Get(context.Background(), domain.LangEnglish, "action movies")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got.OriginalText != want.OriginalText {
		t.Errorf("got %q, want %q", got.OriginalText, want.OriginalText)
	}
}

func TestMemoryLanguageIsolation(t *testing.T) {
	c := NewMemory(4, nil)
	c.Put(context.Background(), domain.LangEnglish, "phim hay", sampleResult("en"))

	if _, ok := c.Get(context.Background(), domain.LangVietnamese, "phim hay"); ok {
		t.Fatal("same text under another language must miss")
	}
}

func TestMemoryEviction(t *testing.T) {
	c := NewMemory(2, nil)
	ctx := context.Background()
	c.Put(ctx, domain.LangEnglish, "a", sampleResult("a"))
	c.Put(ctx, domain.LangEnglish, "b", sampleResult("b"))
	// Touch "a" so "b" is the eviction victim.
	c.Get(ctx, domain.LangEnglish, "a")
	c.Put(ctx, domain.LangEnglish, "c", sampleResult("c"))

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get(ctx, domain.LangEnglish, "b"); ok {
		t.Error("expected least recently used entry to be evicted")
	}
	if _, ok := c.Get(ctx, domain.LangEnglish, "a"); !ok {
		t.Error("recently used entry must survive eviction")
	}
}

func TestMemoryUpdateExisting(t *testing.T) {
	c := NewMemory(2, nil)
	ctx := context.Background()
	c.Put(ctx, domain.LangEnglish, "a", sampleResult("first"))
	c.Put(ctx, domain.LangEnglish, "a", sampleResult("second"))

	got, ok := c.Get(ctx, domain.LangEnglish, "a")
	if !ok || got.OriginalText != "second" {
		t.Errorf("got %+v, want the updated entry", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestKVRoundTrip(t *testing.T) {
	stored := make(map[string][]byte)
	ms := &mockKVStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			if data, ok := stored[key]; ok {
				return data, nil
			}
			return nil, db.ErrKeyNotFound
		},
		setFn: func(_ context.Context, key string, value []byte, _ time.Duration) error {
			stored[key] = value
			return nil
		},
	}
	c := NewKV(ms, time.Hour, nil, zap.NewNop())
	ctx := context.Background()

	if _, ok := c.Get(ctx, domain.LangVietnamese, "phim hanh dong"); ok {
		t.Fatal("expected miss before Put")
	}
	want := sampleResult("phim hanh dong")
	c.Put(ctx, domain.LangVietnamese, "phim hanh dong", want)

	got, ok := c.Get(ctx, domain.LangVietnamese, "phim hanh dong")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got.OriginalText != want.OriginalText {
		t.Errorf("got %q, want %q", got.OriginalText, want.OriginalText)
	}
}

func TestKVBackendErrorReadsAsMiss(t *testing.T) {
	ms := &mockKVStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return nil, errors.New("connection refused")
		},
	}
	c := NewKV(ms, time.Hour, nil, zap.NewNop())

	if _, ok := c.Get(context.Background(), domain.LangEnglish, "action"); ok {
		t.Fatal("backend error must degrade to a miss")
	}
}

func TestKVCorruptEntryReadsAsMiss(t *testing.T) {
	ms := &mockKVStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return []byte("{not json"), nil
		},
	}
	c := NewKV(ms, time.Hour, nil, zap.NewNop())

	if _, ok := c.Get(context.Background(), domain.LangEnglish, "action"); ok {
		t.Fatal("corrupt entry must degrade to a miss")
	}
}

func TestKVPutFailureIsSilent(t *testing.T) {
	ms := &mockKVStore{
		setFn: func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
			return errors.New("connection refused")
		},
	}
	c := NewKV(ms, time.Hour, nil, zap.NewNop())
	c.Put(context.Background(), domain.LangEnglish, "action", sampleResult("action"))

	if ms.setCalls != 1 {
		t.Fatalf("setCalls = %d, want 1", ms.setCalls)
	}
}
