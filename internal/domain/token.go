package domain

// KeyPrefix namespaces all keys querylens writes to the shared KV store.
const KeyPrefix = "querylens:"

// Language is a coarse language tag attached to tokens and cache keys.
type Language string

const (
	// LangEnglish marks plain-ASCII tokens.
	LangEnglish Language = "en"
	// LangVietnamese marks tokens carrying Vietnamese script markers.
	LangVietnamese Language = "vi"
)

// Token is a normalized word unit. Immutable once produced.
type Token struct {
	Surface string   `json:"surface"`
	Lang    Language `json:"lang"`
	Stem    string   `json:"stem"`
}

// Document is an ordered token sequence, the unit of classifier training
// and TF-IDF indexing. Only the stems/surfaces matter downstream, so a
// document is a plain string slice.
type Document []string

// TrainingExample pairs a tokenized document with its intent label.
type TrainingExample struct {
	Document Document
	Label    string
}
