// Package normalize lowercases text, folds diacritics, and maps
// Vietnamese genre/dialect phrases to canonical English tokens.
// Normalize is idempotent: running it on its own output returns the
// same text. Unmapped input passes through unchanged.
package normalize

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dialectMap maps diacritic-folded Vietnamese genre phrases to their
// canonical English genre token. Folding happens before lookup, so only
// ASCII spellings are keyed here.
var dialectMap = map[string]string{
	"hanh dong":           "action",
	"tinh cam":            "romance",
	"lang man":            "romance",
	"kinh di":             "horror",
	"hai huoc":            "comedy",
	"hai kich":            "comedy",
	"khoa hoc vien tuong": "sci-fi",
	"vien tuong":          "sci-fi",
	"phieu luu":           "adventure",
	"gia tuong":           "fantasy",
	"toi pham":            "crime",
	"chien tranh":         "war",
	"the thao":            "sport",
	"tai lieu":            "documentary",
	"gia dinh":            "family",
	"lich su":             "history",
	"am nhac":             "music",
	"bi an":               "mystery",
	"hoi hop":             "thriller",
	"mien tay":            "western",
	"hoat hinh":           "animation",
	"hoat hoa":            "animation",
	"chinh kich":          "drama",
}

// dialectKeys holds dialectMap keys sorted longest-first, then
// lexicographically. Map iteration order is randomized in Go, so the
// replacement order is fixed here to keep Normalize deterministic and
// to let "khoa hoc vien tuong" win over its "vien tuong" suffix.
var dialectKeys = func() []string {
	keys := make([]string, 0, len(dialectMap))
	for k := range dialectMap {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// foldTransformer decomposes to NFD, drops combining marks, and
// recomposes. This is the diacritic-stripping half of Fold.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, strips diacritics, and maps known
// dialect/genre phrases to their canonical English token. Folding runs
// first so accented and unaccented spellings hit the same map keys, and
// so a second pass over the output finds nothing left to rewrite.
func Normalize(text string) string {
	s := Fold(strings.ToLower(text))
	for _, key := range dialectKeys {
		if strings.Contains(s, key) {
			s = strings.ReplaceAll(s, key, dialectMap[key])
		}
	}
	return s
}

// Fold strips Vietnamese diacritics: "hành động" becomes "hanh dong".
// The letter đ does not decompose under NFD and is mapped explicitly.
// Text without diacritics is returned unchanged.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; pass the input through.
		folded = s
	}
	folded = strings.ReplaceAll(folded, "đ", "d")
	return strings.ReplaceAll(folded, "Đ", "D")
}
