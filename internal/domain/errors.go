package domain

import "errors"

var (
	// ErrUntrainedModel signals a prediction request before training.
	ErrUntrainedModel = errors.New("model not trained")
	// ErrTranslationUnavailable signals that no translation provider is
	// configured or that the provider call failed. Recovered internally
	// via the action-word fallback; never crosses the transport boundary.
	ErrTranslationUnavailable = errors.New("translation unavailable")
	// ErrEmptyQuery signals a query with no tokens left after filtering.
	ErrEmptyQuery = errors.New("query empty after filtering")
	// ErrEmptyCorpus signals training requested on an empty corpus.
	ErrEmptyCorpus = errors.New("empty training corpus")
)
