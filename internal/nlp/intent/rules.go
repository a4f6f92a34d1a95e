package intent

import "github.com/kailas-cloud/querylens/internal/domain"

var (
	genreKeywords = map[string]struct{}{
		"action": {}, "comedy": {}, "horror": {}, "romance": {},
		"thriller": {}, "drama": {}, "scifi": {},
	}
	popularityKeywords = map[string]struct{}{
		"popular": {}, "trending": {}, "hot": {}, "pho": {}, "bien": {},
	}
	ratingKeywords = map[string]struct{}{
		"best": {}, "top": {}, "hay": {}, "nhat": {}, "good": {}, "great": {},
	}
	similarityKeywords = map[string]struct{}{
		"similar": {}, "like": {}, "tuong": {}, "tu": {}, "giong": {},
	}
	actorKeywords = map[string]struct{}{
		"actor": {}, "actress": {}, "dien": {}, "vien": {},
		"starring": {}, "cast": {},
	}
)

// RuleBased maps tokens to an intent with first-match-wins keyword
// checks. Year beats genre, genre beats popularity, and so on down to
// the title-search fallback, so a query mentioning both "2024" and
// "action" reads as a year search.
func RuleBased(tokens []string) string {
	for _, tok := range tokens {
		if isYearToken(tok) {
			return domain.IntentSearchByYear
		}
	}
	if anyIn(tokens, genreKeywords) {
		return domain.IntentSearchByGenre
	}
	if anyIn(tokens, popularityKeywords) {
		return domain.IntentSearchPopular
	}
	if anyIn(tokens, ratingKeywords) {
		return domain.IntentSearchTopRated
	}
	if anyIn(tokens, similarityKeywords) {
		return domain.IntentSearchSimilar
	}
	if anyIn(tokens, actorKeywords) {
		return domain.IntentSearchByActor
	}
	return domain.IntentSearchByTitle
}

func anyIn(tokens []string, set map[string]struct{}) bool {
	for _, tok := range tokens {
		if _, ok := set[tok]; ok {
			return true
		}
	}
	return false
}

func isYearToken(tok string) bool {
	if len(tok) != 4 {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
