// Package tokenize splits normalized text into word tokens and applies
// per-language stemming and stopword filtering. Every function is a pure
// transformation over its input; there is no shared mutable state.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/kailas-cloud/querylens/internal/domain"
	"github.com/kailas-cloud/querylens/internal/nlp/normalize"
)

// vietnameseMarkers are the diacritic-bearing letters (plus đ) whose
// presence tags a token as Vietnamese.
const vietnameseMarkers = "àáảãạăằắẳẵặâầấẩẫậèéẻẽẹêềếểễệìíỉĩịòóỏõọôồốổỗộơờớởỡợùúủũụưừứửữựỳýỷỹỵđ"

// Split lowercases text, replaces non-word runes with spaces, and
// returns the non-empty fields. Diacritic-bearing letters are
// word-forming and survive intact.
func Split(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// IsVietnamese reports whether s contains Vietnamese script markers.
func IsVietnamese(s string) bool {
	return strings.ContainsAny(strings.ToLower(s), vietnameseMarkers)
}

// DetectLanguage tags a token by script: Latin-extended marks
// Vietnamese, plain ASCII defaults to English.
func DetectLanguage(s string) domain.Language {
	if IsVietnamese(s) {
		return domain.LangVietnamese
	}
	return domain.LangEnglish
}

// Stem dispatches per token: Vietnamese tokens get lightweight suffix
// stripping, everything else the English stemmer.
func Stem(word string) string {
	if IsVietnamese(word) {
		return StemVietnamese(word)
	}
	return StemEnglish(word)
}

// Options control the Preprocess pipeline stages.
type Options struct {
	Normalize       bool
	RemoveStopwords bool
	ApplyStemming   bool
}

// DefaultOptions enables every stage.
func DefaultOptions() Options {
	return Options{Normalize: true, RemoveStopwords: true, ApplyStemming: true}
}

// Preprocess runs the full normalize -> split -> stopword -> stem
// pipeline over raw text and returns the resulting token strings.
func Preprocess(text string, opts Options) []string {
	if opts.Normalize {
		text = normalize.Normalize(text)
	}
	tokens := Split(text)
	if opts.RemoveStopwords {
		tokens = RemoveStopwords(tokens)
	}
	if opts.ApplyStemming {
		stemmed := make([]string, len(tokens))
		for i, tok := range tokens {
			stemmed[i] = Stem(tok)
		}
		tokens = stemmed
	}
	return tokens
}

// Tokens produces full Token records (surface, language tag, stem) for
// raw text without stopword filtering.
func Tokens(text string) []domain.Token {
	split := Split(text)
	out := make([]domain.Token, len(split))
	for i, surface := range split {
		out[i] = domain.Token{
			Surface: surface,
			Lang:    DetectLanguage(surface),
			Stem:    Stem(surface),
		}
	}
	return out
}

// NGrams joins each run of n consecutive tokens with single spaces.
// Returns nil when fewer than n tokens exist.
func NGrams(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}

// Frequency counts token occurrences.
func Frequency(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	return freq
}
