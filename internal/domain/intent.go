package domain

// Intent labels form a fixed enumeration shared by all three classifiers.
const (
	IntentSearchByTitle  = "search_by_title"
	IntentSearchByGenre  = "search_by_genre"
	IntentSearchByYear   = "search_by_year"
	IntentSearchPopular  = "search_popular"
	IntentSearchTopRated = "search_high_rating"
	IntentSearchSimilar  = "search_similar"
	IntentSearchByActor  = "search_by_actor"
	// IntentGeneric is the outcome for queries that filter down to nothing.
	IntentGeneric = "generic_query"
)

// Verdict is a single classifier's prediction with its confidence.
type Verdict struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// IntentResult is the ensemble decision plus the per-classifier breakdown.
type IntentResult struct {
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	NaiveBayes Verdict  `json:"naive_bayes"`
	Margin     Verdict  `json:"margin"`
	RuleBased  string   `json:"rule_based"`
	Tokens     []string `json:"tokens"`
}
