package intent

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/querylens/internal/domain"
)

func trainingCorpus() []domain.TrainingExample {
	return []domain.TrainingExample{
		{Document: domain.Document{"action", "movie", "explosion"}, Label: domain.IntentSearchByGenre},
		{Document: domain.Document{"comedy", "movie", "funny"}, Label: domain.IntentSearchByGenre},
		{Document: domain.Document{"horror", "film", "scary"}, Label: domain.IntentSearchByGenre},
		{Document: domain.Document{"movie", "2024", "release"}, Label: domain.IntentSearchByYear},
		{Document: domain.Document{"film", "2020", "year"}, Label: domain.IntentSearchByYear},
		{Document: domain.Document{"popular", "trending", "movie"}, Label: domain.IntentSearchPopular},
		{Document: domain.Document{"best", "top", "rated"}, Label: domain.IntentSearchTopRated},
	}
}

func TestTrainNaiveBayesEmptyCorpus(t *testing.T) {
	if _, err := TrainNaiveBayes(nil); !errors.Is(err, domain.ErrEmptyCorpus) {
		t.Fatalf("TrainNaiveBayes(nil) error = %v, want %v", err, domain.ErrEmptyCorpus)
	}
}

func TestNaiveBayesDisjointVocabularies(t *testing.T) {
	examples := []domain.TrainingExample{
		{Document: domain.Document{"action", "explosion", "fight"}, Label: domain.IntentSearchByGenre},
		{Document: domain.Document{"action", "stunt", "chase"}, Label: domain.IntentSearchByGenre},
		{Document: domain.Document{"2024", "release", "year"}, Label: domain.IntentSearchByYear},
		{Document: domain.Document{"2020", "decade", "year"}, Label: domain.IntentSearchByYear},
	}
	nb, err := TrainNaiveBayes(examples)
	if err != nil {
		t.Fatalf("TrainNaiveBayes() error = %v", err)
	}

	verdict, err := nb.Predict(domain.Document{"action", "explosion"})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if verdict.Intent != domain.IntentSearchByGenre {
		t.Errorf("Predict() intent = %q, want %q", verdict.Intent, domain.IntentSearchByGenre)
	}
	if verdict.Confidence <= 0.5 {
		t.Errorf("Predict() confidence = %v, want > 0.5", verdict.Confidence)
	}
}

func TestNaiveBayesProbabilitiesSumToOne(t *testing.T) {
	nb, err := TrainNaiveBayes(trainingCorpus())
	if err != nil {
		t.Fatalf("TrainNaiveBayes() error = %v", err)
	}
	probs, err := nb.Probabilities(domain.Document{"comedy", "movie"})
	if err != nil {
		t.Fatalf("Probabilities() error = %v", err)
	}
	sum := 0.0
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("probability out of range: %v", p)
		}
		sum += p
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("probabilities sum = %v, want 1.0", sum)
	}
}

func TestNaiveBayesUntrained(t *testing.T) {
	var nb *NaiveBayes
	if _, err := nb.Predict(domain.Document{"action"}); !errors.Is(err, domain.ErrUntrainedModel) {
		t.Fatalf("Predict() on nil model error = %v, want %v", err, domain.ErrUntrainedModel)
	}
}

func TestMarginClassifierPredict(t *testing.T) {
	mc, err := TrainMargin(trainingCorpus(), MarginConfig{Iterations: 200})
	if err != nil {
		t.Fatalf("TrainMargin() error = %v", err)
	}

	verdict, err := mc.Predict(domain.Document{"horror", "scary", "film"})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if verdict.Intent != domain.IntentSearchByGenre {
		t.Errorf("Predict() intent = %q, want %q", verdict.Intent, domain.IntentSearchByGenre)
	}
	if verdict.Confidence < 0 || verdict.Confidence > 1 {
		t.Errorf("Predict() confidence = %v, want in [0, 1]", verdict.Confidence)
	}
}

func TestMarginClassifierUntrained(t *testing.T) {
	var mc *MarginClassifier
	if _, err := mc.Predict(domain.Document{"action"}); !errors.Is(err, domain.ErrUntrainedModel) {
		t.Fatalf("Predict() on nil model error = %v, want %v", err, domain.ErrUntrainedModel)
	}
}

func TestTrainMarginEmptyCorpus(t *testing.T) {
	if _, err := TrainMargin(nil, MarginConfig{}); !errors.Is(err, domain.ErrEmptyCorpus) {
		t.Fatalf("TrainMargin(nil) error = %v, want %v", err, domain.ErrEmptyCorpus)
	}
}

func TestRuleBased(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{"year wins over genre", []string{"action", "2024"}, domain.IntentSearchByYear},
		{"genre", []string{"horror", "scary"}, domain.IntentSearchByGenre},
		{"popularity", []string{"trending", "now"}, domain.IntentSearchPopular},
		{"rating", []string{"top", "rated"}, domain.IntentSearchTopRated},
		{"similarity", []string{"similar", "inception"}, domain.IntentSearchSimilar},
		{"actor", []string{"starring", "hanks"}, domain.IntentSearchByActor},
		{"title fallback", []string{"inception"}, domain.IntentSearchByTitle},
		{"vietnamese popularity", []string{"pho", "bien"}, domain.IntentSearchPopular},
		{"empty", nil, domain.IntentSearchByTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RuleBased(tt.tokens); got != tt.want {
				t.Errorf("RuleBased(%v) = %q, want %q", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestEnsembleClassify(t *testing.T) {
	corpus := trainingCorpus()
	nb, err := TrainNaiveBayes(corpus)
	if err != nil {
		t.Fatalf("TrainNaiveBayes() error = %v", err)
	}
	mc, err := TrainMargin(corpus, MarginConfig{Iterations: 200})
	if err != nil {
		t.Fatalf("TrainMargin() error = %v", err)
	}
	ens := NewEnsemble(nb, mc, 0, 0)

	result, err := ens.Classify([]string{"horror", "scary", "film"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Intent == "" {
		t.Fatal("Classify() returned empty intent")
	}
	if result.Confidence <= 0 || result.Confidence > 1 {
		t.Errorf("Classify() confidence = %v, want in (0, 1]", result.Confidence)
	}
	if result.RuleBased != domain.IntentSearchByGenre {
		t.Errorf("rule verdict = %q, want %q", result.RuleBased, domain.IntentSearchByGenre)
	}
}

func TestEnsembleRuleOverride(t *testing.T) {
	corpus := trainingCorpus()
	nb, err := TrainNaiveBayes(corpus)
	if err != nil {
		t.Fatalf("TrainNaiveBayes() error = %v", err)
	}
	mc, err := TrainMargin(corpus, MarginConfig{Iterations: 200})
	if err != nil {
		t.Fatalf("TrainMargin() error = %v", err)
	}
	// Threshold 1.0 forces the override on every query.
	ens := NewEnsemble(nb, mc, 1.0, 0.8)

	result, err := ens.Classify([]string{"action", "2024"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Intent != domain.IntentSearchByYear {
		t.Errorf("Classify() intent = %q, want rule verdict %q", result.Intent, domain.IntentSearchByYear)
	}
	if result.Confidence != 0.8 {
		t.Errorf("Classify() confidence = %v, want the override value 0.8", result.Confidence)
	}
}

func TestEnsembleUntrained(t *testing.T) {
	ens := NewEnsemble(nil, nil, 0, 0)
	if _, err := ens.Classify([]string{"action"}); !errors.Is(err, domain.ErrUntrainedModel) {
		t.Fatalf("Classify() error = %v, want %v", err, domain.ErrUntrainedModel)
	}
}
