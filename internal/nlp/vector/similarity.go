package vector

import "math"

// Levenshtein computes the classic edit distance with unit costs using
// the two-row dynamic-programming recurrence.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 0
			if ca != cb {
				cost = 1
			}
			curr[j+1] = min3(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// LevenshteinSimilarity is 1 - distance/max(len); 1.0 for two empty
// strings. Symmetric by construction.
func LevenshteinSimilarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}

// Jaccard is |intersection| / |union| over two token sets.
// Both empty: 1.0. A zero union with differing sets cannot occur (the
// union contains every member of either set), so the 0.0 branch below
// only guards the impossible division.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// CharNGrams returns the sliding-window character n-grams of s,
// lowercase-insensitive handling left to the caller. Nil when s is
// shorter than n.
func CharNGrams(s string, n int) []string {
	runes := []rune(s)
	if n <= 0 || len(runes) < n {
		return nil
	}
	grams := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+n]))
	}
	return grams
}

// NGramSimilarity is the Jaccard similarity of the two strings'
// character n-gram sets.
func NGramSimilarity(a, b string, n int) float64 {
	return Jaccard(CharNGrams(a, n), CharNGrams(b, n))
}

// Cosine is the dot product over the key intersection of two sparse
// vectors divided by the product of their full L2 norms. Returns 0 when
// either norm is zero or no keys are shared.
func Cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	dot := 0.0
	for key, va := range a {
		if vb, ok := b[key]; ok {
			dot += va * vb
		}
	}
	if dot == 0 {
		return 0.0
	}
	normA := norm(a)
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (normA * normB)
}

// TokenCosine builds term-frequency vectors from two token lists and
// applies Cosine.
func TokenCosine(a, b []string) float64 {
	return Cosine(freqVector(a), freqVector(b))
}

func freqVector(tokens []string) map[string]float64 {
	vec := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		vec[tok]++
	}
	return vec
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func norm(vec map[string]float64) float64 {
	sum := 0.0
	for _, v := range vec {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
