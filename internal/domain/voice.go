package domain

// VoiceAnalysis is the analysis block attached to a voice search
// response.
type VoiceAnalysis struct {
	QueryType  QueryType    `json:"query_type"`
	Complexity Complexity   `json:"complexity"`
	Tokens     []string     `json:"tokens"`
	Intent     IntentResult `json:"intent_details"`
	// Note carries a human-readable remark for short-circuited queries.
	Note string `json:"note,omitempty"`
}

// VoiceSearchResult is the full understanding of one transcribed voice
// query. Cached per (language, normalized text); OriginalText is
// restored from the raw request after a cache hit.
type VoiceSearchResult struct {
	OriginalText   string        `json:"original_text"`
	ProcessedQuery string        `json:"processed_query"`
	Intent         string        `json:"intent"`
	Confidence     float64       `json:"confidence"`
	Entities       EntityBag     `json:"entities"`
	Params         SearchParams  `json:"search_parameters"`
	Expanded       []string      `json:"expanded_queries"`
	Suggestions    []string      `json:"suggestions"`
	Analysis       VoiceAnalysis `json:"analysis"`
	// Degraded marks a result assembled through a failing stage's
	// fallback path. Degraded results are never cached.
	Degraded bool `json:"degraded,omitempty"`
}

// PreprocessReport exposes the tokenization pipeline's intermediate
// products for one text.
type PreprocessReport struct {
	OriginalText        string         `json:"original_text"`
	Tokens              []string       `json:"tokens"`
	TokensWithStopwords []string       `json:"tokens_with_stopwords"`
	Bigrams             []string       `json:"bigrams"`
	Trigrams            []string       `json:"trigrams"`
	WordFreq            map[string]int `json:"word_frequency"`
	TokenCount          int            `json:"token_count"`
	UniqueTokenCount    int            `json:"unique_token_count"`
}
