package query

import (
	"context"

	"github.com/kailas-cloud/querylens/internal/domain"
)

// Cache stores fully assembled voice search results keyed by language
// and normalized query text.
type Cache interface {
	Get(ctx context.Context, lang domain.Language, text string) (domain.VoiceSearchResult, bool)
	Put(ctx context.Context, lang domain.Language, text string, result domain.VoiceSearchResult)
}
