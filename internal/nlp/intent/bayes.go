// Package intent classifies query intent with a multinomial Naive Bayes
// model, a one-vs-rest hinge-loss margin classifier, and a rule-based
// keyword matcher, combined by a confidence-arbitration ensemble.
// Models are immutable after training and safe for concurrent reads.
package intent

import (
	"math"
	"sort"

	"github.com/kailas-cloud/querylens/internal/domain"
)

// NaiveBayes holds class priors and add-one smoothed word likelihoods
// in a fixed (class, vocabulary-index) table built once at training.
type NaiveBayes struct {
	classes  []string
	classIdx map[string]int
	vocab    map[string]int
	logPrior []float64
	// logLikelihood[class][term] = ln((count+1) / (totalWords+vocabSize))
	logLikelihood [][]float64
}

// TrainNaiveBayes fits priors and smoothed likelihoods on the labeled
// corpus. Returns domain.ErrEmptyCorpus for an empty training set.
func TrainNaiveBayes(examples []domain.TrainingExample) (*NaiveBayes, error) {
	if len(examples) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	classes, classIdx := collectClasses(examples)
	vocab := collectVocab(examples)

	classCounts := make([]int, len(classes))
	wordCounts := make([][]int, len(classes))
	totalWords := make([]int, len(classes))
	for i := range wordCounts {
		wordCounts[i] = make([]int, len(vocab))
	}

	for _, ex := range examples {
		ci := classIdx[ex.Label]
		classCounts[ci]++
		for _, word := range ex.Document {
			wordCounts[ci][vocab[word]]++
			totalWords[ci]++
		}
	}

	nb := &NaiveBayes{
		classes:       classes,
		classIdx:      classIdx,
		vocab:         vocab,
		logPrior:      make([]float64, len(classes)),
		logLikelihood: make([][]float64, len(classes)),
	}
	total := float64(len(examples))
	vocabSize := float64(len(vocab))
	for ci := range classes {
		nb.logPrior[ci] = math.Log(float64(classCounts[ci]) / total)
		nb.logLikelihood[ci] = make([]float64, len(vocab))
		denom := float64(totalWords[ci]) + vocabSize
		for wi := 0; wi < len(vocab); wi++ {
			nb.logLikelihood[ci][wi] = math.Log(float64(wordCounts[ci][wi]+1) / denom)
		}
	}
	return nb, nil
}

// Predict returns the arg-max class with a soft-max confidence over the
// class log-scores. Tokens outside the training vocabulary contribute
// nothing. Fails with domain.ErrUntrainedModel on a nil model.
func (nb *NaiveBayes) Predict(doc domain.Document) (domain.Verdict, error) {
	probs, err := nb.Probabilities(doc)
	if err != nil {
		return domain.Verdict{}, err
	}
	best := domain.Verdict{}
	for _, class := range nb.classes {
		if p := probs[class]; best.Intent == "" || p > best.Confidence {
			best = domain.Verdict{Intent: class, Confidence: p}
		}
	}
	return best, nil
}

// Probabilities returns the soft-max normalized probability per class.
func (nb *NaiveBayes) Probabilities(doc domain.Document) (map[string]float64, error) {
	if nb == nil || len(nb.classes) == 0 {
		return nil, domain.ErrUntrainedModel
	}

	scores := make([]float64, len(nb.classes))
	for ci := range nb.classes {
		score := nb.logPrior[ci]
		for _, word := range doc {
			if wi, ok := nb.vocab[word]; ok {
				score += nb.logLikelihood[ci][wi]
			}
		}
		scores[ci] = score
	}

	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	sum := 0.0
	exp := make([]float64, len(scores))
	for i, s := range scores {
		exp[i] = math.Exp(s - maxScore)
		sum += exp[i]
	}

	probs := make(map[string]float64, len(nb.classes))
	for i, class := range nb.classes {
		probs[class] = exp[i] / sum
	}
	return probs, nil
}

func collectClasses(examples []domain.TrainingExample) ([]string, map[string]int) {
	set := make(map[string]struct{})
	for _, ex := range examples {
		set[ex.Label] = struct{}{}
	}
	classes := make([]string, 0, len(set))
	for class := range set {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	idx := make(map[string]int, len(classes))
	for i, class := range classes {
		idx[class] = i
	}
	return classes, idx
}

func collectVocab(examples []domain.TrainingExample) map[string]int {
	set := make(map[string]struct{})
	for _, ex := range examples {
		for _, word := range ex.Document {
			set[word] = struct{}{}
		}
	}
	words := make([]string, 0, len(set))
	for word := range set {
		words = append(words, word)
	}
	sort.Strings(words)
	vocab := make(map[string]int, len(words))
	for i, word := range words {
		vocab[word] = i
	}
	return vocab
}
