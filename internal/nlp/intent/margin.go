package intent

import (
	"sort"

	"github.com/kailas-cloud/querylens/internal/domain"
)

// MarginConfig tunes the sub-gradient training loop. Zero values fall
// back to the defaults used throughout the query pipeline.
type MarginConfig struct {
	LearningRate float64
	Lambda       float64
	Iterations   int
}

const (
	defaultLearningRate = 0.001
	defaultLambda       = 0.01
	defaultIterations   = 1000
)

func (c MarginConfig) withDefaults() MarginConfig {
	if c.LearningRate <= 0 {
		c.LearningRate = defaultLearningRate
	}
	if c.Lambda <= 0 {
		c.Lambda = defaultLambda
	}
	if c.Iterations <= 0 {
		c.Iterations = defaultIterations
	}
	return c
}

// MarginClassifier is a one-vs-rest linear classifier trained with a
// hinge-loss sub-gradient loop over term-frequency feature vectors.
type MarginClassifier struct {
	classes []string
	vocab   map[string]int
	weights [][]float64
	bias    []float64
}

// TrainMargin fits one binary separator per class. Examples are visited
// in corpus order on every iteration, so training is deterministic.
func TrainMargin(examples []domain.TrainingExample, cfg MarginConfig) (*MarginClassifier, error) {
	if len(examples) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	cfg = cfg.withDefaults()

	classes, classIdx := collectClasses(examples)
	vocab := collectVocab(examples)

	features := make([][]float64, len(examples))
	for i, ex := range examples {
		features[i] = featureVector(ex.Document, vocab)
	}

	mc := &MarginClassifier{
		classes: classes,
		vocab:   vocab,
		weights: make([][]float64, len(classes)),
		bias:    make([]float64, len(classes)),
	}
	for ci := range classes {
		mc.weights[ci] = make([]float64, len(vocab))
		w := mc.weights[ci]
		b := 0.0
		for iter := 0; iter < cfg.Iterations; iter++ {
			for ei, ex := range examples {
				y := -1.0
				if classIdx[ex.Label] == ci {
					y = 1.0
				}
				x := features[ei]
				margin := y * (dot(w, x) + b)
				if margin < 1 {
					for j := range w {
						w[j] += cfg.LearningRate * (y*x[j] - 2*cfg.Lambda*w[j])
					}
					b += cfg.LearningRate * y
				} else {
					for j := range w {
						w[j] += cfg.LearningRate * (-2 * cfg.Lambda * w[j])
					}
				}
			}
		}
		mc.bias[ci] = b
	}
	return mc, nil
}

// Predict scores the document against every separator and returns the
// highest-scoring class. Confidence is the min-max normalized score of
// the winner, or uniform when all separators agree exactly.
func (mc *MarginClassifier) Predict(doc domain.Document) (domain.Verdict, error) {
	if mc == nil || len(mc.classes) == 0 {
		return domain.Verdict{}, domain.ErrUntrainedModel
	}

	x := featureVector(doc, mc.vocab)
	scores := make([]float64, len(mc.classes))
	for ci := range mc.classes {
		scores[ci] = dot(mc.weights[ci], x) + mc.bias[ci]
	}

	bestIdx := 0
	minScore, maxScore := scores[0], scores[0]
	for ci, s := range scores {
		if s > scores[bestIdx] {
			bestIdx = ci
		}
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}

	confidence := 1.0 / float64(len(mc.classes))
	if maxScore > minScore {
		confidence = (scores[bestIdx] - minScore) / (maxScore - minScore)
	}
	return domain.Verdict{Intent: mc.classes[bestIdx], Confidence: confidence}, nil
}

// Classes returns the trained label set in sorted order.
func (mc *MarginClassifier) Classes() []string {
	out := make([]string, len(mc.classes))
	copy(out, mc.classes)
	sort.Strings(out)
	return out
}

func featureVector(doc domain.Document, vocab map[string]int) []float64 {
	x := make([]float64, len(vocab))
	for _, word := range doc {
		if wi, ok := vocab[word]; ok {
			x[wi]++
		}
	}
	return x
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
