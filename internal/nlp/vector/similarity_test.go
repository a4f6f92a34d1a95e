package vector

import (
	"math"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		if got := Levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshteinSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"avenger", "avengers"},
		{"", "abc"},
		{"hành động", "hanh dong"},
		{"x", "y"},
	}
	for _, p := range pairs {
		ab := LevenshteinSimilarity(p[0], p[1])
		ba := LevenshteinSimilarity(p[1], p[0])
		if ab != ba {
			t.Errorf("similarity(%q,%q)=%v but reversed=%v", p[0], p[1], ab, ba)
		}
	}
	if got := LevenshteinSimilarity("abc", "abc"); got != 1.0 {
		t.Errorf("identical strings should score 1.0, got %v", got)
	}
	if got := LevenshteinSimilarity("", ""); got != 1.0 {
		t.Errorf("two empty strings should score 1.0, got %v", got)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 1.0},
		{"identical", []string{"a", "b"}, []string{"b", "a"}, 1.0},
		{"disjoint", []string{"a"}, []string{"b"}, 0.0},
		{"half", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Jaccard = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNGramSimilarity(t *testing.T) {
	if got := NGramSimilarity("night", "night", 2); got != 1.0 {
		t.Errorf("identical strings should score 1.0, got %v", got)
	}
	got := NGramSimilarity("night", "nacht", 2)
	if got <= 0 || got >= 1 {
		t.Errorf("related strings should score in (0,1), got %v", got)
	}
}

func TestCosine(t *testing.T) {
	a := map[string]float64{"x": 1, "y": 2}
	if got := Cosine(a, a); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("self-cosine should be 1.0, got %v", got)
	}
	if got := Cosine(a, map[string]float64{"z": 3}); got != 0.0 {
		t.Errorf("no shared keys should score 0, got %v", got)
	}
	if got := Cosine(a, map[string]float64{}); got != 0.0 {
		t.Errorf("empty vector should score 0, got %v", got)
	}
}

func TestTokenCosine(t *testing.T) {
	got := TokenCosine([]string{"action", "movie"}, []string{"action", "film"})
	if got <= 0 || got >= 1 {
		t.Errorf("partial overlap should score in (0,1), got %v", got)
	}
}
