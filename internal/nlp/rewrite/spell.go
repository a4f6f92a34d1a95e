// Package rewrite improves raw queries before retrieval: spell
// correction, Vietnamese diacritic restoration, voice transcription
// cleanup, synonym expansion, template rewriting, and suggestions.
package rewrite

import (
	"strings"

	"github.com/kailas-cloud/querylens/internal/domain"
	"github.com/kailas-cloud/querylens/internal/nlp/tokenize"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyz"

// SpellCorrector proposes the most frequent in-vocabulary word within
// edit distance two of a misspelling. Train before use; an untrained
// corrector passes every word through unchanged.
type SpellCorrector struct {
	freq map[string]int
}

// NewSpellCorrector returns an empty corrector.
func NewSpellCorrector() *SpellCorrector {
	return &SpellCorrector{freq: make(map[string]int)}
}

// Train accumulates word frequencies from tokenized documents. May be
// called repeatedly; counts add up.
func (c *SpellCorrector) Train(docs []domain.Document) {
	for _, doc := range docs {
		for _, word := range doc {
			c.freq[word]++
		}
	}
}

// Correct returns word unchanged when it is in vocabulary, otherwise
// the most frequent known candidate at edit distance one, then two.
// Unknown words with no candidates pass through untouched.
func (c *SpellCorrector) Correct(word string) string {
	if _, ok := c.freq[word]; ok {
		return word
	}
	candidates := c.known(edits1(word))
	if len(candidates) == 0 {
		candidates = c.known(edits2(word))
	}
	if len(candidates) == 0 {
		return word
	}

	best := ""
	bestCount := -1
	for _, cand := range candidates {
		count := c.freq[cand]
		if count > bestCount || (count == bestCount && cand < best) {
			best = cand
			bestCount = count
		}
	}
	return best
}

// CorrectText lowercases and corrects each whitespace-separated word.
// Stopwords and words of two letters or fewer are never corrected.
func (c *SpellCorrector) CorrectText(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		lower := strings.ToLower(word)
		// Stopwords and two-letter function words stay as typed. The
		// vocabulary is domain terms only, so correcting them would
		// pull "a" or "of" into the nearest movie word.
		if len([]rune(lower)) <= 2 || tokenize.IsStopword(lower) {
			words[i] = lower
			continue
		}
		words[i] = c.Correct(lower)
	}
	return strings.Join(words, " ")
}

func (c *SpellCorrector) known(words map[string]struct{}) []string {
	var out []string
	for w := range words {
		if _, ok := c.freq[w]; ok {
			out = append(out, w)
		}
	}
	return out
}

// edits1 generates every string one deletion, transposition,
// replacement, or insertion away from word, over the ASCII alphabet.
func edits1(word string) map[string]struct{} {
	out := make(map[string]struct{})
	for i := 0; i <= len(word); i++ {
		left, right := word[:i], word[i:]
		if len(right) > 0 {
			out[left+right[1:]] = struct{}{}
		}
		if len(right) > 1 {
			out[left+string(right[1])+string(right[0])+right[2:]] = struct{}{}
		}
		for j := 0; j < len(asciiLetters); j++ {
			ch := string(asciiLetters[j])
			if len(right) > 0 {
				out[left+ch+right[1:]] = struct{}{}
			}
			out[left+ch+right] = struct{}{}
		}
	}
	return out
}

func edits2(word string) map[string]struct{} {
	out := make(map[string]struct{})
	for e1 := range edits1(word) {
		for e2 := range edits1(e1) {
			out[e2] = struct{}{}
		}
	}
	return out
}
