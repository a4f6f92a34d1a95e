package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kailas-cloud/querylens/internal/domain"
	"github.com/kailas-cloud/querylens/internal/nlp/tokenize"
)

var templateGenres = []string{"action", "comedy", "horror", "romance", "thriller", "drama"}

var (
	genreTemplates = []string{"%s movies", "best %s films", "%s cinema"}
	yearTemplates  = []string{"movies from %s", "%s films", "movies released in %s"}
	actorTemplates = []string{"%s movies", "films starring %s", "%s filmography"}
	ratingRewrites = []string{"top rated movies", "best movies", "highly rated films"}
)

var rewriteYearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// Rewrite produces alternate phrasings of the query keyed on its
// derived type. The original query always leads; duplicates are
// dropped in first-seen order.
func Rewrite(query string, queryType domain.QueryType, people []string) []string {
	out := []string{query}
	seen := map[string]struct{}{query: {}}
	add := func(s string) {
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}

	switch queryType {
	case domain.GenreSearch, domain.GenreYearSearch:
		tokens := expansionTokens(query)
		for _, genre := range templateGenres {
			if !containsToken(tokens, genre) {
				continue
			}
			for _, tmpl := range genreTemplates {
				add(fmt.Sprintf(tmpl, genre))
			}
		}
	case domain.YearSearch:
		if year := rewriteYearPattern.FindString(query); year != "" {
			for _, tmpl := range yearTemplates {
				add(fmt.Sprintf(tmpl, year))
			}
		}
	case domain.PersonSearch:
		for i, person := range people {
			if i == 2 {
				break
			}
			for _, tmpl := range actorTemplates {
				add(fmt.Sprintf(tmpl, person))
			}
		}
	case domain.RatingSearch:
		for _, r := range ratingRewrites {
			add(r)
		}
	}
	return out
}

// simplifyDropWords are filler words removed on top of the shared
// stopword lists when boiling a query down to key terms.
var simplifyDropWords = map[string]struct{}{
	"about": {}, "movie": {}, "film": {}, "movies": {}, "films": {},
}

// Simplify reduces a descriptive query to its key terms: stopwords,
// filler words, and words of two letters or fewer are dropped. Returns
// the empty string when nothing survives.
func Simplify(query string) string {
	tokens := tokenize.Preprocess(query, tokenize.Options{
		Normalize:       true,
		RemoveStopwords: true,
	})
	var kept []string
	for _, tok := range tokens {
		if len([]rune(tok)) <= 2 {
			continue
		}
		if _, drop := simplifyDropWords[tok]; drop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}
