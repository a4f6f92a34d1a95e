package vector

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/querylens/internal/domain"
	"github.com/kailas-cloud/querylens/internal/nlp/tokenize"
)

// Blend weights for the fuzzy score. Fixed by design; the token overlap
// carries the most weight because movie titles differ mostly in word
// choice, not spelling.
const (
	fuzzyLevWeight    = 0.3
	fuzzyBigramWeight = 0.3
	fuzzyTokenWeight  = 0.4
)

// FuzzyMatch scores every candidate against query with a weighted blend
// of Levenshtein, character-bigram, and token-Jaccard similarity, keeps
// candidates at or above threshold, and returns them sorted descending
// by score. An empty result is a defined outcome, not an error.
func FuzzyMatch(query string, candidates []string, threshold float64) []domain.Match {
	queryLower := strings.ToLower(query)
	queryTokens := tokenize.Preprocess(query, tokenize.DefaultOptions())

	matches := make([]domain.Match, 0, len(candidates))
	for _, candidate := range candidates {
		candidateLower := strings.ToLower(candidate)

		lev := LevenshteinSimilarity(queryLower, candidateLower)
		bigram := NGramSimilarity(queryLower, candidateLower, 2)
		jaccard := Jaccard(queryTokens, tokenize.Preprocess(candidate, tokenize.DefaultOptions()))

		score := lev*fuzzyLevWeight + bigram*fuzzyBigramWeight + jaccard*fuzzyTokenWeight
		if score >= threshold {
			matches = append(matches, domain.Match{Text: candidate, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
