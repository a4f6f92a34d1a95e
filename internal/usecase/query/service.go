package query

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/querylens/internal/domain"
	"github.com/kailas-cloud/querylens/internal/metrics"
	"github.com/kailas-cloud/querylens/internal/nlp/entity"
	"github.com/kailas-cloud/querylens/internal/nlp/intent"
	"github.com/kailas-cloud/querylens/internal/nlp/normalize"
	"github.com/kailas-cloud/querylens/internal/nlp/rewrite"
	"github.com/kailas-cloud/querylens/internal/nlp/tokenize"
	"github.com/kailas-cloud/querylens/internal/nlp/vector"
)

// MethodAverage is the aggregate pseudo-method: the mean over every
// individual similarity method.
const MethodAverage = "average"

// similarityMethods lists the individual methods in the order scores
// are computed and ties broken.
var similarityMethods = []string{
	"cosine", "embedding", "jaccard", "levenshtein", "ngram_2", "ngram_3",
}

// DefaultTopK bounds ranked candidate lists when the caller passes no
// explicit limit.
const DefaultTopK = 5

// DefaultFuzzyThreshold is the minimum blended score a fuzzy-match
// candidate must reach to be returned.
const DefaultFuzzyThreshold = 0.3

// stopwordOnlySuggestions is returned when a query filters down to
// nothing.
var stopwordOnlySuggestions = []string{
	"Vui lòng tìm kiếm cụ thể hơn",
	"Thử tìm tên phim hoặc diễn viên",
}

// Config tunes the pipeline. Zero values fall back to package defaults.
type Config struct {
	// OverrideThreshold and OverrideConfidence parametrize the
	// rule-based fallback of the intent ensemble.
	OverrideThreshold  float64
	OverrideConfidence float64
	// MaxExpansions caps the expanded-query list per request.
	MaxExpansions int
	// SuggestionLimit caps suggestion and related-query lists.
	SuggestionLimit int
}

// Service is the query understanding pipeline: intent classification,
// entity analysis, similarity scoring, and query expansion.
type Service struct {
	models     *Models
	ensemble   *intent.Ensemble
	translator domain.Translator
	cache      Cache
	suggester  *rewrite.Suggester
	logger     *zap.Logger

	maxExpansions   int
	suggestionLimit int
}

// New assembles the service. Translator and cache may be nil; the
// pipeline degrades to heuristic cleanup and uncached operation.
func New(models *Models, cache Cache, translator domain.Translator, logger *zap.Logger, cfg Config) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxExpansions <= 0 {
		cfg.MaxExpansions = rewrite.DefaultMaxTotal
	}
	if cfg.SuggestionLimit <= 0 {
		cfg.SuggestionLimit = rewrite.DefaultSuggestionLimit
	}
	return &Service{
		models:          models,
		ensemble:        intent.NewEnsemble(models.Bayes, models.Margin, cfg.OverrideThreshold, cfg.OverrideConfidence),
		translator:      translator,
		cache:           cache,
		suggester:       rewrite.NewSuggester(),
		logger:          logger,
		maxExpansions:   cfg.MaxExpansions,
		suggestionLimit: cfg.SuggestionLimit,
	}
}

// ClassifyIntent runs the full tokenizer over text and classifies the
// result with the ensemble.
func (s *Service) ClassifyIntent(ctx context.Context, text string) (domain.IntentResult, error) {
	defer observeStage("classify", time.Now())

	tokens := tokenize.Preprocess(text, tokenize.DefaultOptions())
	if len(tokens) == 0 {
		return domain.IntentResult{}, domain.ErrEmptyQuery
	}

	result, err := s.ensemble.Classify(tokens)
	if err != nil {
		return domain.IntentResult{}, err
	}
	metrics.IntentClassificationsTotal.WithLabelValues(result.Intent).Inc()
	return result, nil
}

// Analyze extracts entities, derives the query type, search parameters,
// suggestions, and complexity for text.
func (s *Service) Analyze(ctx context.Context, text string) (domain.QueryAnalysis, error) {
	defer observeStage("analyze", time.Now())

	if strings.TrimSpace(text) == "" {
		return domain.QueryAnalysis{}, domain.ErrEmptyQuery
	}
	return entity.Analyze(text), nil
}

// Preprocess exposes the tokenization pipeline's intermediate products.
func (s *Service) Preprocess(text string) domain.PreprocessReport {
	tokens := tokenize.Preprocess(text, tokenize.DefaultOptions())
	withStopwords := tokenize.Preprocess(text, tokenize.Options{Normalize: true, ApplyStemming: true})
	freq := tokenize.Frequency(tokens)

	return domain.PreprocessReport{
		OriginalText:        text,
		Tokens:              tokens,
		TokensWithStopwords: withStopwords,
		Bigrams:             tokenize.NGrams(tokens, 2),
		Trigrams:            tokenize.NGrams(tokens, 3),
		WordFreq:            freq,
		TokenCount:          len(tokens),
		UniqueTokenCount:    len(freq),
	}
}

// Similarity scores a text pair. An empty or "average" method computes
// every method plus their mean; a named method computes that one alone.
func (s *Service) Similarity(ctx context.Context, text1, text2, method string) (domain.SimilarityReport, error) {
	scores := s.allSimilarities(text1, text2)

	if method == "" || method == MethodAverage {
		return domain.SimilarityReport{
			Scores:     scores,
			Average:    averageScore(scores),
			BestMethod: bestMethod(scores),
		}, nil
	}

	score, ok := scores[method]
	if !ok {
		return domain.SimilarityReport{}, fmt.Errorf("unknown similarity method: %s", method)
	}
	return domain.SimilarityReport{
		Scores:     map[string]float64{method: score},
		Average:    score,
		BestMethod: method,
	}, nil
}

// MostSimilar ranks candidates against query by their average
// similarity, highest first, ties broken lexicographically.
func (s *Service) MostSimilar(ctx context.Context, query string, candidates []string, topK int) []domain.Match {
	if topK <= 0 {
		topK = DefaultTopK
	}

	matches := make([]domain.Match, 0, len(candidates))
	for _, candidate := range candidates {
		matches = append(matches, domain.Match{
			Text:  candidate,
			Score: averageScore(s.allSimilarities(query, candidate)),
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Text < matches[j].Text
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// FuzzyMatch returns the candidates whose blended edit, character-gram,
// and token similarity to query reaches threshold.
func (s *Service) FuzzyMatch(ctx context.Context, query string, candidates []string, threshold float64) []domain.Match {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return vector.FuzzyMatch(query, candidates, threshold)
}

// ProcessQuery runs the rewrite pipeline: voice-error and dialect
// cleanup, action-word stripping, optional translation, spell
// correction, simplification, expansion, and templated rewrites. When
// simplification drops at least one token, the shorter form feeds the
// expansion and rewrite stages. The returned flag reports whether a
// failing translation stage forced the heuristic fallback.
func (s *Service) ProcessQuery(
	ctx context.Context, query string, queryType domain.QueryType, people []string,
) (domain.ExpansionResult, bool) {
	defer observeStage("expand", time.Now())

	base := strings.ToLower(strings.TrimSpace(query))
	base = rewrite.NormalizeVoiceErrors(base)
	base = rewrite.CorrectDialect(base)
	cleaned := rewrite.CleanActionWords(base)

	corrected, degraded := s.translateOrKeep(ctx, cleaned)
	corrected = s.models.Spell.CorrectText(corrected)

	// The simplified form replaces the corrected query downstream when
	// it is strictly shorter in token count.
	simplified := rewrite.Simplify(corrected)
	adopted := corrected
	if simplified != "" && len(strings.Fields(simplified)) < len(strings.Fields(corrected)) {
		adopted = simplified
	}

	return domain.ExpansionResult{
		OriginalQuery:   query,
		CorrectedQuery:  corrected,
		SimplifiedQuery: simplified,
		Expanded:        rewrite.ExpandAll(adopted, s.maxExpansions),
		Rewritten:       rewrite.Rewrite(adopted, queryType, people),
		Suggestions:     s.suggester.Suggest(adopted, s.suggestionLimit),
		Related:         s.suggester.Related(adopted, s.suggestionLimit),
	}, degraded
}

// VoiceSearch is the end-to-end voice pipeline. Results are cached per
// (language, normalized text); a stopword-only query short-circuits to
// a generic result and is never cached, and neither is any result
// assembled through a fallback path.
func (s *Service) VoiceSearch(ctx context.Context, voiceText string, language domain.Language) (domain.VoiceSearchResult, error) {
	defer observeStage("voice_search", time.Now())

	normalized := strings.ToLower(strings.TrimSpace(voiceText))
	if normalized == "" {
		return domain.VoiceSearchResult{}, domain.ErrEmptyQuery
	}
	if language == "" {
		language = s.detectLanguage(ctx, normalized)
	}

	content := tokenize.Preprocess(normalized, tokenize.Options{Normalize: true, RemoveStopwords: true})
	if len(content) == 0 {
		return s.stopwordOnlyResult(voiceText, normalized), nil
	}

	if s.cache != nil {
		if hit, ok := s.cache.Get(ctx, language, normalized); ok {
			hit.OriginalText = voiceText
			return hit, nil
		}
	}

	intentResult, err := s.ClassifyIntent(ctx, normalized)
	if err != nil {
		return domain.VoiceSearchResult{}, err
	}
	analysis, err := s.Analyze(ctx, normalized)
	if err != nil {
		return domain.VoiceSearchResult{}, err
	}
	expansion, degraded := s.ProcessQuery(ctx, normalized, analysis.Type, analysis.Entities.People)

	result := domain.VoiceSearchResult{
		OriginalText:   normalized,
		ProcessedQuery: expansion.CorrectedQuery,
		Intent:         intentResult.Intent,
		Confidence:     intentResult.Confidence,
		Entities:       analysis.Entities,
		Params:         analysis.Params,
		Expanded:       expansion.Expanded,
		Suggestions:    analysis.Suggestions,
		Analysis: domain.VoiceAnalysis{
			QueryType:  analysis.Type,
			Complexity: analysis.Complexity,
			Tokens:     analysis.Tokens,
			Intent:     intentResult,
		},
		Degraded: degraded,
	}

	s.suggester.Record(normalized)
	if !degraded && s.cache != nil {
		s.cache.Put(ctx, language, normalized, result)
	}

	result.OriginalText = voiceText
	return result, nil
}

// Suggester exposes the shared autocomplete history.
func (s *Service) Suggester() *rewrite.Suggester { return s.suggester }

// Ready reports whether the trained models backing the pipeline are
// present.
func (s *Service) Ready() error {
	if s.models == nil || s.models.Bayes == nil || s.models.Margin == nil {
		return domain.ErrUntrainedModel
	}
	return nil
}

func (s *Service) stopwordOnlyResult(voiceText, normalized string) domain.VoiceSearchResult {
	return domain.VoiceSearchResult{
		OriginalText:   voiceText,
		ProcessedQuery: normalized,
		Intent:         domain.IntentGeneric,
		Confidence:     1.0,
		Suggestions:    append([]string(nil), stopwordOnlySuggestions...),
		Analysis: domain.VoiceAnalysis{
			QueryType:  domain.GeneralSearch,
			Complexity: domain.ComplexitySimple,
			Note:       "Query only contains stopwords.",
		},
	}
}

// detectLanguage asks the translator for the language when one is
// wired, falling back to the script heuristic on error or on a code
// outside the two supported languages.
func (s *Service) detectLanguage(ctx context.Context, text string) domain.Language {
	if s.translator != nil {
		code, err := s.translator.DetectLanguage(ctx, text)
		if err != nil {
			s.logger.Warn("language detection failed, using script heuristic",
				zap.Error(err),
			)
		} else {
			switch domain.Language(code) {
			case domain.LangVietnamese:
				return domain.LangVietnamese
			case domain.LangEnglish:
				return domain.LangEnglish
			}
		}
	}
	return tokenize.DetectLanguage(text)
}

// translateOrKeep routes Vietnamese text through the translator when
// one is configured. Without a translator, and whenever translation
// fails, the dictionary normalization stands in so genre phrases still
// reach their canonical English form. Only the failure path marks the
// result degraded.
func (s *Service) translateOrKeep(ctx context.Context, text string) (string, bool) {
	if !tokenize.IsVietnamese(text) {
		return text, false
	}
	heuristic := normalize.Normalize(text)
	if s.translator == nil {
		return heuristic, false
	}

	translated, err := s.translator.Translate(ctx, text, "en")
	if err != nil {
		s.logger.Warn("translation failed, keeping heuristic cleanup",
			zap.Error(err),
		)
		return heuristic, true
	}
	translated = strings.ToLower(strings.TrimSpace(translated))
	if translated == "" {
		return heuristic, false
	}
	return translated, false
}

func (s *Service) allSimilarities(text1, text2 string) map[string]float64 {
	lower1, lower2 := strings.ToLower(text1), strings.ToLower(text2)
	tokens1 := tokenize.Preprocess(text1, tokenize.DefaultOptions())
	tokens2 := tokenize.Preprocess(text2, tokenize.DefaultOptions())

	scores := make(map[string]float64, len(similarityMethods))
	scores["levenshtein"] = vector.LevenshteinSimilarity(lower1, lower2)
	scores["jaccard"] = vector.Jaccard(tokens1, tokens2)
	scores["cosine"] = s.cosine(tokens1, tokens2)
	scores["ngram_2"] = vector.NGramSimilarity(lower1, lower2, 2)
	scores["ngram_3"] = vector.NGramSimilarity(lower1, lower2, 3)
	scores["embedding"] = s.models.Embedding.DocumentSimilarity(tokens1, tokens2)
	return scores
}

// cosine prefers TF-IDF weighting and falls back to raw term
// frequencies when the index was fitted on an empty corpus.
func (s *Service) cosine(tokens1, tokens2 []string) float64 {
	if s.models.TFIDF.Fitted() {
		return vector.Cosine(s.models.TFIDF.Transform(tokens1), s.models.TFIDF.Transform(tokens2))
	}
	return vector.TokenCosine(tokens1, tokens2)
}

func averageScore(scores map[string]float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, score := range scores {
		sum += score
	}
	return sum / float64(len(scores))
}

// bestMethod scans methods in their fixed order so equal scores resolve
// to the lexicographically first name.
func bestMethod(scores map[string]float64) string {
	best, bestScore := "", -1.0
	for _, method := range similarityMethods {
		if score, ok := scores[method]; ok && score > bestScore {
			best, bestScore = method, score
		}
	}
	return best
}

func observeStage(stage string, start time.Time) {
	metrics.PipelineStageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
