package health

import "context"

// DBPinger checks cache database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker reports whether the trained NLP models can serve
// predictions.
type ModelChecker interface {
	Ready() error
}
