package entity

import (
	"fmt"

	"github.com/kailas-cloud/querylens/internal/domain"
	"github.com/kailas-cloud/querylens/internal/nlp/tokenize"
)

const maxSuggestions = 5

// newestFirstCues trigger descending release-date sorting for time
// based queries.
var newestFirstCues = map[string]struct{}{
	"new": {}, "moi": {}, "latest": {}, "nhat": {},
}

// Analyze runs full query understanding: tokenization with and without
// stopwords, n-grams, entity recognition, query typing, search
// parameter derivation, suggestions, and a complexity estimate.
func Analyze(query string) domain.QueryAnalysis {
	tokens := tokenize.Preprocess(query, tokenize.Options{
		Normalize:     true,
		ApplyStemming: true,
	})
	cleanTokens := tokenize.Preprocess(query, tokenize.DefaultOptions())

	analysis := domain.QueryAnalysis{
		Query:       query,
		Entities:    Extract(query),
		Tokens:      tokens,
		CleanTokens: cleanTokens,
		Bigrams:     tokenize.NGrams(tokens, 2),
		Trigrams:    tokenize.NGrams(tokens, 3),
		WordFreq:    tokenize.Frequency(cleanTokens),
	}
	analysis.Type = classify(&analysis)
	analysis.Params = deriveParams(&analysis, query)
	analysis.Suggestions = suggest(analysis.Entities)
	analysis.Complexity = complexity(&analysis)
	return analysis
}

// classify picks the query type with a fixed precedence: a recognized
// person always wins, then genre+year, then single entity classes down
// to the general fallback.
func classify(a *domain.QueryAnalysis) domain.QueryType {
	switch {
	case a.HasPerson():
		return domain.PersonSearch
	case a.HasGenre() && a.HasYear():
		return domain.GenreYearSearch
	case a.HasGenre():
		return domain.GenreSearch
	case a.HasYear():
		return domain.YearSearch
	case len(a.Entities.RatingExprs) > 0:
		return domain.RatingSearch
	case len(a.Entities.PopExprs) > 0:
		return domain.PopularitySearch
	case len(a.Entities.TimeExprs) > 0:
		return domain.TimeBasedSearch
	case len(a.Entities.Titles) > 0:
		return domain.TitleSearch
	default:
		return domain.GeneralSearch
	}
}

// deriveParams builds the structured retrieval parameters. The sort key
// follows the derived query type, so a genre+year query keeps its
// natural relevance order even when it also says "best".
func deriveParams(a *domain.QueryAnalysis, query string) domain.SearchParams {
	params := domain.SearchParams{
		Genres:    a.Entities.Genres,
		Years:     a.Entities.Years,
		YearRange: ExtractYearRange(query),
		People:    a.Entities.People,
		Titles:    a.Entities.Titles,
	}
	switch a.Type {
	case domain.RatingSearch:
		params.SortBy = domain.SortByRating
	case domain.PopularitySearch:
		params.SortBy = domain.SortByPopularity
	case domain.TimeBasedSearch:
		params.SortBy = domain.SortByOldestFirst
		for _, tok := range a.CleanTokens {
			if _, ok := newestFirstCues[tok]; ok {
				params.SortBy = domain.SortByNewestFirst
				break
			}
		}
	}
	return params
}

func suggest(bag domain.EntityBag) []string {
	var out []string
	for i, genre := range bag.Genres {
		if i == 3 {
			break
		}
		out = append(out,
			fmt.Sprintf("Top %s movies", genre),
			fmt.Sprintf("New %s releases", genre),
		)
	}
	for i, year := range bag.Years {
		if i == 2 {
			break
		}
		out = append(out, fmt.Sprintf("Best movies of %s", year))
	}
	for i, person := range bag.People {
		if i == 2 {
			break
		}
		out = append(out, fmt.Sprintf("Movies starring %s", person))
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// complexity scores the query additively per entity class, with people
// and titles weighing double.
func complexity(a *domain.QueryAnalysis) domain.Complexity {
	score := 0
	if a.HasGenre() {
		score++
	}
	if a.HasYear() {
		score++
	}
	if a.HasPerson() {
		score += 2
	}
	if len(a.Entities.RatingExprs) > 0 {
		score++
	}
	if len(a.Entities.PopExprs) > 0 {
		score++
	}
	if len(a.Entities.Titles) > 0 {
		score += 2
	}
	switch {
	case score <= 1:
		return domain.ComplexitySimple
	case score <= 3:
		return domain.ComplexityModerate
	default:
		return domain.ComplexityComplex
	}
}
