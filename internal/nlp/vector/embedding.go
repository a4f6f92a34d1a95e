package vector

import (
	"math"
	"sort"

	"github.com/kailas-cloud/querylens/internal/domain"
)

// DefaultEmbeddingSize is the per-word dimension cap: each word keeps
// its top-K most frequent co-occurring context words.
const DefaultEmbeddingSize = 50

// DefaultWindowSize is the symmetric co-occurrence window.
const DefaultWindowSize = 2

// Embedding holds L2-normalized co-occurrence word vectors.
// Read-only after TrainEmbedding returns.
type Embedding struct {
	vectors map[string]map[string]float64
}

// TrainEmbedding accumulates (word, context-word) co-occurrence counts
// within a symmetric window across the corpus and keeps, per word, the
// topK most frequent context words as an L2-normalized sparse vector.
func TrainEmbedding(corpus []domain.Document, windowSize, topK int) *Embedding {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if topK <= 0 {
		topK = DefaultEmbeddingSize
	}

	cooccur := make(map[string]map[string]int)
	for _, doc := range corpus {
		for i, word := range doc {
			start := i - windowSize
			if start < 0 {
				start = 0
			}
			end := i + windowSize + 1
			if end > len(doc) {
				end = len(doc)
			}
			for j := start; j < end; j++ {
				if i == j {
					continue
				}
				counts, ok := cooccur[word]
				if !ok {
					counts = make(map[string]int)
					cooccur[word] = counts
				}
				counts[doc[j]]++
			}
		}
	}

	vectors := make(map[string]map[string]float64, len(cooccur))
	for word, counts := range cooccur {
		vectors[word] = topKVector(counts, topK)
	}
	return &Embedding{vectors: vectors}
}

// topKVector keeps the topK highest counts (ties broken by word for
// determinism) and L2-normalizes the result.
func topKVector(counts map[string]int, topK int) map[string]float64 {
	type pair struct {
		word  string
		count int
	}
	pairs := make([]pair, 0, len(counts))
	for w, c := range counts {
		pairs = append(pairs, pair{w, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].word < pairs[j].word
	})
	if len(pairs) > topK {
		pairs = pairs[:topK]
	}

	vec := make(map[string]float64, len(pairs))
	sumSq := 0.0
	for _, p := range pairs {
		v := float64(p.count)
		vec[p.word] = v
		sumSq += v * v
	}
	if mag := math.Sqrt(sumSq); mag > 0 {
		for w := range vec {
			vec[w] /= mag
		}
	}
	return vec
}

// Vector returns the trained vector for word, or an empty map for
// unknown words.
func (e *Embedding) Vector(word string) map[string]float64 {
	if vec, ok := e.vectors[word]; ok {
		return vec
	}
	return map[string]float64{}
}

// WordSimilarity is the cosine similarity of two word vectors; 0 when
// either word is unknown.
func (e *Embedding) WordSimilarity(a, b string) float64 {
	return Cosine(e.Vector(a), e.Vector(b))
}

// DocumentSimilarity averages each document's per-token vectors
// (missing vectors contribute nothing) and compares the averages by
// cosine similarity.
func (e *Embedding) DocumentSimilarity(a, b domain.Document) float64 {
	return Cosine(e.averageVector(a), e.averageVector(b))
}

func (e *Embedding) averageVector(doc domain.Document) map[string]float64 {
	avg := make(map[string]float64)
	counted := 0
	for _, word := range doc {
		vec, ok := e.vectors[word]
		if !ok {
			continue
		}
		counted++
		for key, val := range vec {
			avg[key] += val
		}
	}
	if counted > 0 {
		for key := range avg {
			avg[key] /= float64(counted)
		}
	}
	return avg
}
