package rewrite

import (
	"strings"

	"github.com/kailas-cloud/querylens/internal/nlp/tokenize"
)

// DefaultMaxExpansions caps synonyms substituted per matched token.
const DefaultMaxExpansions = 3

// DefaultMaxTotal caps the combined expansion list.
const DefaultMaxTotal = 10

// synonyms lists substitutes per token in fixed priority order, mixing
// English and Vietnamese so either language reaches the other.
var synonyms = map[string][]string{
	"movie":   {"film", "cinema", "picture", "motion picture", "phim"},
	"film":    {"movie", "cinema", "picture", "phim"},
	"find":    {"search", "look", "discover", "tìm", "tìm kiếm"},
	"search":  {"find", "look", "discover", "tìm", "tìm kiếm"},
	"good":    {"great", "excellent", "amazing", "wonderful", "hay", "tốt"},
	"bad":     {"poor", "terrible", "awful", "horrible", "tệ", "xấu"},
	"new":     {"latest", "recent", "fresh", "modern", "mới", "mới nhất"},
	"old":     {"classic", "vintage", "retro", "ancient", "cũ", "kinh điển"},
	"popular": {"trending", "hot", "viral", "famous", "phổ biến", "nổi tiếng"},
	"best":    {"top", "greatest", "finest", "excellent", "hay nhất", "tốt nhất"},
	"action":  {"adventure", "thriller", "hành động"},
	"comedy":  {"humor", "funny", "hài", "hài hước"},
	"horror":  {"scary", "terror", "frightening", "kinh dị"},
	"romance": {"love", "romantic", "tình cảm"},
	"drama":   {"theatrical", "kịch"},
	"scifi":   {"science fiction", "sci-fi", "viễn tưởng"},
	"fantasy": {"magical", "giả tưởng"},
}

// hypernyms generalize a token.
var hypernyms = map[string]string{
	"action": "movie", "comedy": "movie", "horror": "movie",
	"romance": "movie", "thriller": "movie", "drama": "movie",
}

// hyponyms specialize a token; they are appended rather than
// substituted.
var hyponyms = map[string][]string{
	"movie": {"action", "comedy", "horror", "romance", "thriller", "drama"},
	"good":  {"excellent", "amazing", "wonderful"},
	"bad":   {"terrible", "awful", "horrible"},
}

// expansionTokens splits the query without stemming so dictionary keys
// match surface words.
func expansionTokens(query string) []string {
	return tokenize.Preprocess(query, tokenize.Options{})
}

// ExpandSynonyms substitutes each matched token with up to
// maxExpansions synonyms. The original query always leads the result.
func ExpandSynonyms(query string, maxExpansions int) []string {
	if maxExpansions <= 0 {
		maxExpansions = DefaultMaxExpansions
	}
	out := []string{query}
	seen := map[string]struct{}{query: {}}
	for _, token := range expansionTokens(query) {
		syns, ok := synonyms[token]
		if !ok {
			continue
		}
		if len(syns) > maxExpansions {
			syns = syns[:maxExpansions]
		}
		for _, syn := range syns {
			expanded := strings.ReplaceAll(query, token, syn)
			if _, dup := seen[expanded]; dup || expanded == query {
				continue
			}
			seen[expanded] = struct{}{}
			out = append(out, expanded)
		}
	}
	return out
}

// ExpandHypernyms substitutes matched tokens with their generalization.
func ExpandHypernyms(query string) []string {
	out := []string{query}
	seen := map[string]struct{}{query: {}}
	for _, token := range expansionTokens(query) {
		hyper, ok := hypernyms[token]
		if !ok {
			continue
		}
		expanded := strings.ReplaceAll(query, token, hyper)
		if _, dup := seen[expanded]; dup || expanded == query {
			continue
		}
		seen[expanded] = struct{}{}
		out = append(out, expanded)
	}
	return out
}

// ExpandHyponyms appends each specialization to the query.
func ExpandHyponyms(query string) []string {
	out := []string{query}
	seen := map[string]struct{}{query: {}}
	for _, token := range expansionTokens(query) {
		for _, hypo := range hyponyms[token] {
			expanded := query + " " + hypo
			if _, dup := seen[expanded]; dup {
				continue
			}
			seen[expanded] = struct{}{}
			out = append(out, expanded)
		}
	}
	return out
}

// ExpandAll unions every expansion strategy, preserving first-seen
// order, capped at maxTotal entries.
func ExpandAll(query string, maxTotal int) []string {
	if maxTotal <= 0 {
		maxTotal = DefaultMaxTotal
	}
	out := []string{query}
	seen := map[string]struct{}{query: {}}
	for _, batch := range [][]string{
		ExpandSynonyms(query, DefaultMaxExpansions),
		ExpandHypernyms(query),
		ExpandHyponyms(query),
	} {
		for _, expanded := range batch {
			if _, dup := seen[expanded]; dup {
				continue
			}
			seen[expanded] = struct{}{}
			out = append(out, expanded)
		}
	}
	if len(out) > maxTotal {
		out = out[:maxTotal]
	}
	return out
}
