package tokenize

import "strings"

// Stopword sets for both languages. Vietnamese entries are listed in
// both accented and diacritic-folded spellings because tokens may arrive
// either way depending on whether normalization ran.
var vietnameseStopwords = map[string]struct{}{
	"và": {}, "va": {}, "của": {}, "cua": {}, "có": {}, "được": {}, "duoc": {},
	"trong": {}, "là": {}, "với": {}, "voi": {}, "cho": {}, "từ": {},
	"này": {}, "nay": {}, "đó": {}, "những": {}, "nhung": {}, "các": {},
	"cac": {}, "một": {}, "mot": {}, "để": {}, "không": {}, "khong": {},
	"tôi": {}, "bạn": {}, "họ": {}, "chúng": {}, "chung": {},
	"tìm": {}, "phim": {}, "movie": {}, "xem": {}, "coi": {}, "về": {}, "giúp": {},
	"giup": {},
}

var englishStopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "can": {}, "find": {},
	"search": {}, "show": {}, "me": {},
}

// IsStopword reports whether tok (case-insensitively) belongs to either
// language's stopword set.
func IsStopword(tok string) bool {
	lower := strings.ToLower(tok)
	if _, ok := vietnameseStopwords[lower]; ok {
		return true
	}
	_, ok := englishStopwords[lower]
	return ok
}

// RemoveStopwords filters stopwords out of tokens, preserving order.
func RemoveStopwords(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !IsStopword(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}
