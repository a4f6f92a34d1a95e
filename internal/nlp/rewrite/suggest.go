package rewrite

import (
	"sort"
	"strings"
	"sync"

	"github.com/kailas-cloud/querylens/internal/nlp/tokenize"
)

// DefaultSuggestionLimit caps suggestion and related-query lists.
const DefaultSuggestionLimit = 5

// predefinedSuggestions seed completion before any history exists.
var predefinedSuggestions = []string{
	"action movies 2024",
	"best comedy films",
	"horror movies",
	"romantic comedies",
	"sci-fi movies",
	"thriller films",
	"animated movies",
	"documentary films",
	"classic movies",
	"popular movies",
}

// Suggester completes partial queries from a predefined list plus an
// in-memory frequency history of observed queries. Safe for concurrent
// use.
type Suggester struct {
	mu      sync.Mutex
	history map[string]int
}

// NewSuggester returns a suggester with empty history.
func NewSuggester() *Suggester {
	return &Suggester{history: make(map[string]int)}
}

// Record normalizes a served query and bumps its frequency.
func (s *Suggester) Record(query string) {
	normalized := strings.Join(tokenize.Preprocess(query, tokenize.Options{Normalize: true}), " ")
	if normalized == "" {
		return
	}
	s.mu.Lock()
	s.history[normalized]++
	s.mu.Unlock()
}

// Suggest returns up to max completions with the partial query as
// prefix: predefined entries first, then history by descending
// frequency with lexicographic tie-break.
func (s *Suggester) Suggest(partial string, max int) []string {
	if max <= 0 {
		max = DefaultSuggestionLimit
	}
	prefix := strings.ToLower(partial)

	var out []string
	seen := make(map[string]struct{})
	for _, sg := range predefinedSuggestions {
		if strings.HasPrefix(sg, prefix) {
			out = append(out, sg)
			seen[sg] = struct{}{}
		}
	}
	for _, entry := range s.topHistory(20) {
		if !strings.HasPrefix(entry, prefix) {
			continue
		}
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// Related returns up to max history queries sharing tokens with the
// query, ordered by overlap then frequency then text.
func (s *Suggester) Related(query string, max int) []string {
	if max <= 0 {
		max = DefaultSuggestionLimit
	}
	tokens := toSet(tokenize.Preprocess(query, tokenize.DefaultOptions()))

	type scored struct {
		text    string
		overlap int
		count   int
	}
	var related []scored
	for _, entry := range s.topHistory(50) {
		if entry == query {
			continue
		}
		stored := toSet(tokenize.Preprocess(entry, tokenize.DefaultOptions()))
		overlap := 0
		for tok := range tokens {
			if _, ok := stored[tok]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		s.mu.Lock()
		count := s.history[entry]
		s.mu.Unlock()
		related = append(related, scored{text: entry, overlap: overlap, count: count})
	}
	sort.Slice(related, func(i, j int) bool {
		if related[i].overlap != related[j].overlap {
			return related[i].overlap > related[j].overlap
		}
		if related[i].count != related[j].count {
			return related[i].count > related[j].count
		}
		return related[i].text < related[j].text
	})

	out := make([]string, 0, len(related))
	for _, r := range related {
		if len(out) == max {
			break
		}
		out = append(out, r.text)
	}
	return out
}

// topHistory returns up to n history entries by descending count with
// lexicographic tie-break.
func (s *Suggester) topHistory(n int) []string {
	s.mu.Lock()
	entries := make([]string, 0, len(s.history))
	for q := range s.history {
		entries = append(entries, q)
	}
	counts := make(map[string]int, len(entries))
	for _, q := range entries {
		counts[q] = s.history[q]
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if counts[entries[i]] != counts[entries[j]] {
			return counts[entries[i]] > counts[entries[j]]
		}
		return entries[i] < entries[j]
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
