package tokenize

import "strings"

// vietnameseSuffixes is the fixed candidate list for the lightweight
// Vietnamese stemmer, tried in order. A suffix is stripped only when the
// residual keeps more than two characters.
var vietnameseSuffixes = []string{"tion", "ing", "ed", "ly", "ness", "ment"}

// StemVietnamese strips the first matching candidate suffix, guarded by
// a minimum residual length. Unmatched words pass through lowercased.
func StemVietnamese(word string) string {
	word = strings.ToLower(word)
	for _, suffix := range vietnameseSuffixes {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix)+2 {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

// StemEnglish applies a reduced Porter-style stemmer:
// plural removal (-sses keeps -ss, -ies becomes -y, trailing -s drops),
// past-tense/gerund removal gated on a vowel in the residual stem, and
// a final double-consonant collapse. Words of length two or less are
// returned unchanged. Idempotent over its own output for these suffixes.
func StemEnglish(word string) string {
	if len(word) <= 2 {
		return word
	}
	word = strings.ToLower(word)

	// Step 1a: plurals.
	switch {
	case strings.HasSuffix(word, "sses"):
		word = word[:len(word)-2]
	case strings.HasSuffix(word, "ies"):
		word = word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ss"):
		// keep
	case strings.HasSuffix(word, "s"):
		word = word[:len(word)-1]
	}

	// Step 1b: past tense and gerund.
	switch {
	case strings.HasSuffix(word, "eed"):
		if stem := word[:len(word)-3]; measure(stem) > 0 {
			word = stem + "ee"
		}
	case strings.HasSuffix(word, "ed"):
		if stem := word[:len(word)-2]; hasVowel(stem) {
			word = stem
		}
	case strings.HasSuffix(word, "ing"):
		if stem := word[:len(word)-3]; hasVowel(stem) {
			word = stem
		}
	}

	// Step 2: collapse a trailing double consonant.
	if n := len(word); n >= 2 && word[n-1] == word[n-2] && !isVowelByte(word[n-1]) {
		word = word[:n-1]
	}

	return word
}

func isVowelByte(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func hasVowel(s string) bool {
	for i := 0; i < len(s); i++ {
		if isVowelByte(s[i]) {
			return true
		}
	}
	return false
}

// isConsonant implements the Porter consonant test: y is a consonant at
// position 0 and after a consonant it flips to a vowel role.
func isConsonant(word string, i int) bool {
	if i >= len(word) {
		return false
	}
	c := word[i]
	if isVowelByte(c) {
		return false
	}
	if c == 'y' {
		if i == 0 {
			return true
		}
		return !isConsonant(word, i-1)
	}
	return true
}

// measure counts VC transitions in the word's consonant/vowel pattern,
// the m in Porter's (C)(VC)^m(V) form.
func measure(word string) int {
	var pattern []byte
	for i := range word {
		mark := byte('V')
		if isConsonant(word, i) {
			mark = 'C'
		}
		if len(pattern) == 0 || pattern[len(pattern)-1] != mark {
			pattern = append(pattern, mark)
		}
	}
	return strings.Count(string(pattern), "VC")
}
