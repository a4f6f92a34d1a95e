package query

import (
	"fmt"

	"github.com/kailas-cloud/querylens/internal/domain"
	"github.com/kailas-cloud/querylens/internal/nlp/intent"
	"github.com/kailas-cloud/querylens/internal/nlp/rewrite"
	"github.com/kailas-cloud/querylens/internal/nlp/vector"
)

// Models bundles every trained artifact the service needs. Built once
// at startup via TrainModels and read-only afterwards.
type Models struct {
	Bayes     *intent.NaiveBayes
	Margin    *intent.MarginClassifier
	TFIDF     *vector.TFIDF
	Embedding *vector.Embedding
	Spell     *rewrite.SpellCorrector
}

// TrainModels fits both intent classifiers on the labeled examples and
// the TF-IDF index, word embeddings, and spell corrector on the
// document corpus.
func TrainModels(
	examples []domain.TrainingExample, docs []domain.Document, cfg intent.MarginConfig,
) (*Models, error) {
	bayes, err := intent.TrainNaiveBayes(examples)
	if err != nil {
		return nil, fmt.Errorf("train naive bayes: %w", err)
	}

	margin, err := intent.TrainMargin(examples, cfg)
	if err != nil {
		return nil, fmt.Errorf("train margin classifier: %w", err)
	}

	tfidf := vector.NewTFIDF()
	tfidf.Fit(docs)

	spell := rewrite.NewSpellCorrector()
	spell.Train(docs)

	return &Models{
		Bayes:     bayes,
		Margin:    margin,
		TFIDF:     tfidf,
		Embedding: vector.TrainEmbedding(docs, vector.DefaultWindowSize, vector.DefaultEmbeddingSize),
		Spell:     spell,
	}, nil
}
