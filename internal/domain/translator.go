package domain

import "context"

// Translator is the pluggable translation capability. Implementations
// may be absent or failing; callers must degrade to heuristic fallbacks
// and must never let a Translator error abort the pipeline.
type Translator interface {
	// DetectLanguage returns an ISO 639-1 language code for text.
	DetectLanguage(ctx context.Context, text string) (string, error)
	// Translate returns text translated into the target language.
	Translate(ctx context.Context, text, target string) (string, error)
}
