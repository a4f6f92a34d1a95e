package domain

// ExpansionResult holds the corrected, simplified, expanded, and
// rewritten variants of one query. One per request.
type ExpansionResult struct {
	OriginalQuery   string   `json:"original_query"`
	CorrectedQuery  string   `json:"corrected_query"`
	SimplifiedQuery string   `json:"simplified_query"`
	Expanded        []string `json:"expanded_queries"`
	Rewritten       []string `json:"rewritten_queries"`
	Suggestions     []string `json:"suggestions"`
	Related         []string `json:"related_queries"`
}

// SimilarityReport names each similarity score produced for a text pair
// plus their average.
type SimilarityReport struct {
	Scores     map[string]float64 `json:"similarities"`
	Average    float64            `json:"average_similarity"`
	BestMethod string             `json:"most_similar_method"`
}

// Match is one fuzzy-match candidate with its blended score.
type Match struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}
