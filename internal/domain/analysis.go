package domain

// QueryType is the derived shape of a search query.
type QueryType string

const (
	PersonSearch     QueryType = "person_search"
	GenreYearSearch  QueryType = "genre_year_search"
	GenreSearch      QueryType = "genre_search"
	YearSearch       QueryType = "year_search"
	RatingSearch     QueryType = "rating_search"
	PopularitySearch QueryType = "popularity_search"
	TimeBasedSearch  QueryType = "time_based_search"
	TitleSearch      QueryType = "title_search"
	GeneralSearch    QueryType = "general_search"
)

// Complexity buckets the additive entity score.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// Sort keys derived from entity classes present in the query.
const (
	SortByRating      = "rating"
	SortByPopularity  = "popularity"
	SortByNewestFirst = "release_date_desc"
	SortByOldestFirst = "release_date_asc"
)

// EntityBag holds the entity lists extracted from one query.
// Created per request, discarded after response assembly.
type EntityBag struct {
	Genres      []string `json:"genres"`
	Years       []string `json:"years"`
	Titles      []string `json:"titles"`
	People      []string `json:"people"`
	TimeExprs   []string `json:"time_expressions"`
	RatingExprs []string `json:"rating_expressions"`
	PopExprs    []string `json:"popularity_expressions"`
}

// YearRange is the min/max over all four-digit years found in a query.
// Zero values mean "unset".
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SearchParams are the structured retrieval parameters derived from the
// extracted entities.
type SearchParams struct {
	Genres    []string  `json:"genres"`
	Years     []string  `json:"years"`
	YearRange YearRange `json:"year_range"`
	People    []string  `json:"people"`
	Titles    []string  `json:"titles"`
	SortBy    string    `json:"sort_by,omitempty"`
}

// QueryAnalysis aggregates everything derived from one query.
type QueryAnalysis struct {
	Query       string         `json:"query"`
	Type        QueryType      `json:"query_type"`
	Entities    EntityBag      `json:"entities"`
	Params      SearchParams   `json:"search_parameters"`
	Suggestions []string       `json:"suggestions"`
	Complexity  Complexity     `json:"complexity"`
	Tokens      []string       `json:"tokens"`
	CleanTokens []string       `json:"clean_tokens"`
	Bigrams     []string       `json:"bigrams"`
	Trigrams    []string       `json:"trigrams"`
	WordFreq    map[string]int `json:"word_frequency"`
	// Degraded marks an analysis assembled through a failing stage's
	// fallback path. Degraded results are never cached.
	Degraded bool `json:"degraded,omitempty"`
}

// HasGenre reports whether any genre entity was extracted.
func (a *QueryAnalysis) HasGenre() bool { return len(a.Entities.Genres) > 0 }

// HasYear reports whether any year entity was extracted.
func (a *QueryAnalysis) HasYear() bool { return len(a.Entities.Years) > 0 }

// HasPerson reports whether any person entity was extracted.
func (a *QueryAnalysis) HasPerson() bool { return len(a.Entities.People) > 0 }
