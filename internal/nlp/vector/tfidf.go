// Package vector holds the from-scratch vector space model: a TF-IDF
// builder, a co-occurrence word-embedding trainer, string and vector
// similarity primitives, and the blended fuzzy matcher. Everything here
// is a total function: empty inputs produce defined results, and terms
// outside a fitted vocabulary are silently ignored by design.
package vector

import (
	"math"
	"sort"

	"github.com/kailas-cloud/querylens/internal/domain"
)

// TFIDF is a term-frequency / inverse-document-frequency model over a
// fixed corpus. Read-only after Fit.
type TFIDF struct {
	vocab  map[string]int // term -> stable index
	idf    []float64      // indexed by vocab index
	fitted bool
}

// NewTFIDF creates an unfitted model.
func NewTFIDF() *TFIDF {
	return &TFIDF{vocab: make(map[string]int)}
}

// Fit builds the vocabulary as the union of corpus terms, assigns each
// term a stable index in sorted order, and computes
// idf = ln(N / (df + 1)) per term.
func (m *TFIDF) Fit(corpus []domain.Document) {
	terms := make(map[string]struct{})
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			terms[term] = struct{}{}
			seen[term] = struct{}{}
		}
		for term := range seen {
			docFreq[term]++
		}
	}

	sorted := make([]string, 0, len(terms))
	for term := range terms {
		sorted = append(sorted, term)
	}
	sort.Strings(sorted)

	m.vocab = make(map[string]int, len(sorted))
	m.idf = make([]float64, len(sorted))
	n := float64(len(corpus))
	for i, term := range sorted {
		m.vocab[term] = i
		m.idf[i] = math.Log(n / float64(docFreq[term]+1))
	}
	m.fitted = true
}

// Fitted reports whether Fit has run.
func (m *TFIDF) Fitted() bool { return m.fitted }

// VocabSize returns the number of distinct fitted terms.
func (m *TFIDF) VocabSize() int { return len(m.vocab) }

// Transform maps a document to its sparse TF-IDF vector. Terms outside
// the fitted vocabulary are skipped silently; an empty document yields
// an empty vector. Never errors.
func (m *TFIDF) Transform(doc domain.Document) map[string]float64 {
	vec := make(map[string]float64)
	if len(doc) == 0 {
		return vec
	}
	counts := make(map[string]int, len(doc))
	for _, term := range doc {
		counts[term]++
	}
	total := float64(len(doc))
	for term, count := range counts {
		idx, ok := m.vocab[term]
		if !ok {
			continue
		}
		vec[term] = float64(count) / total * m.idf[idx]
	}
	return vec
}
