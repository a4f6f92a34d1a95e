package intent

import "github.com/kailas-cloud/querylens/internal/domain"

const (
	// DefaultOverrideThreshold is the ensemble confidence below which
	// the rule-based verdict replaces the statistical one.
	DefaultOverrideThreshold = 0.7
	// DefaultOverrideConfidence is the confidence reported after a
	// rule-based override.
	DefaultOverrideConfidence = 0.8
)

// Ensemble arbitrates between the Naive Bayes and margin classifiers
// and falls back on keyword rules when both are unsure.
type Ensemble struct {
	bayes              *NaiveBayes
	margin             *MarginClassifier
	overrideThreshold  float64
	overrideConfidence float64
}

// NewEnsemble wires the trained models together. Threshold or
// confidence values outside (0, 1] fall back to the defaults.
func NewEnsemble(bayes *NaiveBayes, margin *MarginClassifier, threshold, confidence float64) *Ensemble {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultOverrideThreshold
	}
	if confidence <= 0 || confidence > 1 {
		confidence = DefaultOverrideConfidence
	}
	return &Ensemble{
		bayes:              bayes,
		margin:             margin,
		overrideThreshold:  threshold,
		overrideConfidence: confidence,
	}
}

// Classify runs both statistical models and the rule matcher over the
// preprocessed tokens. When the models agree the confidences average;
// when they disagree the more confident one wins; a low-confidence
// result is overridden by the rule verdict at a fixed confidence.
func (e *Ensemble) Classify(tokens []string) (domain.IntentResult, error) {
	if e == nil || e.bayes == nil || e.margin == nil {
		return domain.IntentResult{}, domain.ErrUntrainedModel
	}

	doc := domain.Document(tokens)
	nbVerdict, err := e.bayes.Predict(doc)
	if err != nil {
		return domain.IntentResult{}, err
	}
	mcVerdict, err := e.margin.Predict(doc)
	if err != nil {
		return domain.IntentResult{}, err
	}

	final := nbVerdict
	if nbVerdict.Intent == mcVerdict.Intent {
		final.Confidence = (nbVerdict.Confidence + mcVerdict.Confidence) / 2
	} else if mcVerdict.Confidence > nbVerdict.Confidence {
		final = mcVerdict
	}

	ruleIntent := RuleBased(tokens)
	if final.Confidence < e.overrideThreshold {
		final = domain.Verdict{Intent: ruleIntent, Confidence: e.overrideConfidence}
	}

	return domain.IntentResult{
		Intent:     final.Intent,
		Confidence: final.Confidence,
		NaiveBayes: nbVerdict,
		Margin:     mcVerdict,
		RuleBased:  ruleIntent,
		Tokens:     tokens,
	}, nil
}
