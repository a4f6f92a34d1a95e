package query

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/querylens/internal/corpus"
	"github.com/kailas-cloud/querylens/internal/domain"
	"github.com/kailas-cloud/querylens/internal/nlp/intent"
)

type mockCache struct {
	store map[string]domain.VoiceSearchResult
	gets  int
	puts  int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string]domain.VoiceSearchResult)}
}

func (m *mockCache) key(lang domain.Language, text string) string {
	return string(lang) + "\x00" + text
}

func (m *mockCache) Get(_ context.Context, lang domain.Language, text string) (domain.VoiceSearchResult, bool) {
	m.gets++
	result, ok := m.store[m.key(lang, text)]
	return result, ok
}

func (m *mockCache) Put(_ context.Context, lang domain.Language, text string, result domain.VoiceSearchResult) {
	m.puts++
	m.store[m.key(lang, text)] = result
}

type mockTranslator struct {
	translateFn func(ctx context.Context, text, target string) (string, error)
	calls       int
}

func (m *mockTranslator) DetectLanguage(context.Context, string) (string, error) {
	return "vi", nil
}

func (m *mockTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	m.calls++
	return m.translateFn(ctx, text, target)
}

func newTestService(t *testing.T, cache Cache, translator domain.Translator) *Service {
	t.Helper()
	models, err := TrainModels(
		corpus.TrainingExamples(), corpus.Documents(), intent.MarginConfig{Iterations: 200},
	)
	if err != nil {
		t.Fatalf("TrainModels: %v", err)
	}
	return New(models, cache, translator, zap.NewNop(), Config{})
}

func TestClassifyIntentGenre(t *testing.T) {
	svc := newTestService(t, nil, nil)

	result, err := svc.ClassifyIntent(context.Background(), "action movie")
	if err != nil {
		t.Fatalf("ClassifyIntent: %v", err)
	}
	if result.Intent != domain.IntentSearchByGenre {
		t.Fatalf("intent = %q, want %q", result.Intent, domain.IntentSearchByGenre)
	}
	if result.Confidence <= 0 {
		t.Fatalf("confidence = %v, want > 0", result.Confidence)
	}
}

func TestClassifyIntentEmptyQuery(t *testing.T) {
	svc := newTestService(t, nil, nil)

	if _, err := svc.ClassifyIntent(context.Background(), "   "); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestAnalyzeEmptyQuery(t *testing.T) {
	svc := newTestService(t, nil, nil)

	if _, err := svc.Analyze(context.Background(), " "); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestPreprocessReport(t *testing.T) {
	svc := newTestService(t, nil, nil)

	report := svc.Preprocess("find the action film")
	if len(report.Tokens) != 2 {
		t.Fatalf("tokens = %v, want 2 content tokens", report.Tokens)
	}
	if len(report.TokensWithStopwords) != 4 {
		t.Fatalf("tokens with stopwords = %v, want 4", report.TokensWithStopwords)
	}
	if report.TokenCount != 2 || report.UniqueTokenCount != 2 {
		t.Fatalf("counts = %d/%d, want 2/2", report.TokenCount, report.UniqueTokenCount)
	}
	if len(report.Bigrams) != 1 {
		t.Fatalf("bigrams = %v, want exactly one", report.Bigrams)
	}
}

func TestSimilarityIdenticalTexts(t *testing.T) {
	svc := newTestService(t, nil, nil)

	report, err := svc.Similarity(context.Background(), "action movie", "action movie", "")
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if len(report.Scores) != len(similarityMethods) {
		t.Fatalf("scores = %v, want one per method", report.Scores)
	}
	if math.Abs(report.Average-1.0) > 1e-9 {
		t.Fatalf("average = %v, want 1.0", report.Average)
	}
	// Every method scores 1.0; the tie resolves to the first name.
	if report.BestMethod != "cosine" {
		t.Fatalf("best method = %q, want cosine", report.BestMethod)
	}
}

func TestSimilarityNamedMethod(t *testing.T) {
	svc := newTestService(t, nil, nil)

	report, err := svc.Similarity(context.Background(), "batman", "batman begins", "levenshtein")
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if len(report.Scores) != 1 {
		t.Fatalf("scores = %v, want only levenshtein", report.Scores)
	}
	if report.BestMethod != "levenshtein" {
		t.Fatalf("best method = %q, want levenshtein", report.BestMethod)
	}
	if report.Average != report.Scores["levenshtein"] {
		t.Fatalf("average = %v, want the single score %v", report.Average, report.Scores["levenshtein"])
	}
}

func TestSimilarityUnknownMethod(t *testing.T) {
	svc := newTestService(t, nil, nil)

	if _, err := svc.Similarity(context.Background(), "a", "b", "soundex"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestMostSimilarRanking(t *testing.T) {
	svc := newTestService(t, nil, nil)

	matches := svc.MostSimilar(context.Background(), "action movie",
		[]string{"comedy film", "action movie", "batman"}, 2)
	if len(matches) != 2 {
		t.Fatalf("matches = %v, want 2", matches)
	}
	if matches[0].Text != "action movie" {
		t.Fatalf("top match = %q, want the identical candidate", matches[0].Text)
	}
	if matches[0].Score < matches[1].Score {
		t.Fatal("matches not sorted by score descending")
	}
}

func TestMostSimilarTieBreaksLexicographically(t *testing.T) {
	svc := newTestService(t, nil, nil)

	matches := svc.MostSimilar(context.Background(), "zzz", []string{"b", "a"}, 0)
	if len(matches) != 2 {
		t.Fatalf("matches = %v, want both candidates", matches)
	}
	if matches[0].Text != "a" {
		t.Fatalf("first match = %q, want lexicographic order on equal scores", matches[0].Text)
	}
}

func TestFuzzyMatchDelegates(t *testing.T) {
	svc := newTestService(t, nil, nil)

	matches := svc.FuzzyMatch(context.Background(), "batman", []string{"batman", "superman"}, 0)
	if len(matches) == 0 || matches[0].Text != "batman" {
		t.Fatalf("matches = %v, want batman first", matches)
	}
}

func TestProcessQueryStripsActionWords(t *testing.T) {
	svc := newTestService(t, nil, nil)

	result, degraded := svc.ProcessQuery(context.Background(), "Tìm phim action", domain.GenreSearch, nil)
	if degraded {
		t.Fatal("heuristic cleanup must not be degraded")
	}
	if result.CorrectedQuery != "phim action" {
		t.Fatalf("corrected = %q, want %q", result.CorrectedQuery, "phim action")
	}
	if result.SimplifiedQuery != "action" {
		t.Fatalf("simplified = %q, want %q", result.SimplifiedQuery, "action")
	}
	if result.OriginalQuery != "Tìm phim action" {
		t.Fatalf("original = %q, want the untouched input", result.OriginalQuery)
	}
}

func TestProcessQueryMapsGenresWithoutTranslator(t *testing.T) {
	svc := newTestService(t, nil, nil)

	result, degraded := svc.ProcessQuery(context.Background(), "tim phim hanh dong moi nhat", domain.GenreSearch, nil)
	if degraded {
		t.Fatal("dictionary mapping must not be degraded")
	}
	if result.CorrectedQuery != "phim action moi nhat" {
		t.Fatalf("corrected = %q, want %q", result.CorrectedQuery, "phim action moi nhat")
	}
}

func TestProcessQueryLeavesGrammaticalEnglishIntact(t *testing.T) {
	svc := newTestService(t, nil, nil)

	result, _ := svc.ProcessQuery(context.Background(), "a movie about action heroes", domain.GenreSearch, nil)
	if result.CorrectedQuery != "a movie about action heroes" {
		t.Fatalf("corrected = %q, want the input unchanged", result.CorrectedQuery)
	}
}

func TestProcessQueryAdoptsSimplifiedForm(t *testing.T) {
	svc := newTestService(t, nil, nil)

	result, _ := svc.ProcessQuery(context.Background(), "a movie about action heroes", domain.GenreSearch, nil)
	if result.SimplifiedQuery != "action heroes" {
		t.Fatalf("simplified = %q, want %q", result.SimplifiedQuery, "action heroes")
	}
	if len(result.Expanded) == 0 || result.Expanded[0] != "action heroes" {
		t.Fatalf("expanded = %v, want the shorter simplified form first", result.Expanded)
	}
}

func TestProcessQueryUsesTranslator(t *testing.T) {
	translator := &mockTranslator{
		translateFn: func(_ context.Context, _, _ string) (string, error) {
			return "action movie", nil
		},
	}
	svc := newTestService(t, nil, translator)

	result, degraded := svc.ProcessQuery(context.Background(), "phim hành động", domain.GenreSearch, nil)
	if degraded {
		t.Fatal("successful translation must not be degraded")
	}
	if translator.calls != 1 {
		t.Fatalf("translator calls = %d, want 1", translator.calls)
	}
	if result.CorrectedQuery != "action movie" {
		t.Fatalf("corrected = %q, want the translation", result.CorrectedQuery)
	}
}

func TestProcessQueryTranslationFailureDegrades(t *testing.T) {
	translator := &mockTranslator{
		translateFn: func(_ context.Context, _, _ string) (string, error) {
			return "", errors.New("upstream down")
		},
	}
	svc := newTestService(t, nil, translator)

	_, degraded := svc.ProcessQuery(context.Background(), "phim hành động", domain.GenreSearch, nil)
	if !degraded {
		t.Fatal("translation failure must mark the result degraded")
	}
}

func TestVoiceSearchEmptyQuery(t *testing.T) {
	svc := newTestService(t, nil, nil)

	if _, err := svc.VoiceSearch(context.Background(), "  ", domain.LangEnglish); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestVoiceSearchStopwordOnlyShortCircuits(t *testing.T) {
	cache := newMockCache()
	svc := newTestService(t, cache, nil)

	result, err := svc.VoiceSearch(context.Background(), "find me the movie", domain.LangEnglish)
	if err != nil {
		t.Fatalf("VoiceSearch: %v", err)
	}
	if result.Intent != domain.IntentGeneric {
		t.Fatalf("intent = %q, want %q", result.Intent, domain.IntentGeneric)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want 1.0", result.Confidence)
	}
	if len(result.Suggestions) != 2 {
		t.Fatalf("suggestions = %v, want the two generic hints", result.Suggestions)
	}
	if result.Analysis.Note == "" {
		t.Fatal("expected a note explaining the short circuit")
	}
	if cache.gets != 0 || cache.puts != 0 {
		t.Fatalf("cache touched %d/%d times, want untouched", cache.gets, cache.puts)
	}
}

func TestVoiceSearchPipeline(t *testing.T) {
	cache := newMockCache()
	svc := newTestService(t, cache, nil)

	result, err := svc.VoiceSearch(context.Background(), "action movie", domain.LangEnglish)
	if err != nil {
		t.Fatalf("VoiceSearch: %v", err)
	}
	if result.Intent != domain.IntentSearchByGenre {
		t.Fatalf("intent = %q, want %q", result.Intent, domain.IntentSearchByGenre)
	}
	if len(result.Entities.Genres) != 1 || result.Entities.Genres[0] != "action" {
		t.Fatalf("genres = %v, want [action]", result.Entities.Genres)
	}
	if result.Analysis.QueryType != domain.GenreSearch {
		t.Fatalf("query type = %q, want %q", result.Analysis.QueryType, domain.GenreSearch)
	}
	if result.ProcessedQuery != "action movie" {
		t.Fatalf("processed = %q, want %q", result.ProcessedQuery, "action movie")
	}
	if cache.puts != 1 {
		t.Fatalf("cache puts = %d, want 1", cache.puts)
	}
}

func TestVoiceSearchCacheHitRestoresOriginalText(t *testing.T) {
	cache := newMockCache()
	svc := newTestService(t, cache, nil)

	first, err := svc.VoiceSearch(context.Background(), "action movie", domain.LangEnglish)
	if err != nil {
		t.Fatalf("first VoiceSearch: %v", err)
	}
	second, err := svc.VoiceSearch(context.Background(), "Action Movie", domain.LangEnglish)
	if err != nil {
		t.Fatalf("second VoiceSearch: %v", err)
	}

	if cache.puts != 1 {
		t.Fatalf("cache puts = %d, want only the first call to store", cache.puts)
	}
	if cache.gets != 2 {
		t.Fatalf("cache gets = %d, want 2", cache.gets)
	}
	if second.OriginalText != "Action Movie" {
		t.Fatalf("original text = %q, want the raw second input", second.OriginalText)
	}
	if second.Intent != first.Intent || second.ProcessedQuery != first.ProcessedQuery {
		t.Fatal("cache hit produced a different understanding")
	}
}

func TestVoiceSearchDegradedResultNotCached(t *testing.T) {
	cache := newMockCache()
	translator := &mockTranslator{
		translateFn: func(_ context.Context, _, _ string) (string, error) {
			return "", errors.New("upstream down")
		},
	}
	svc := newTestService(t, cache, translator)

	result, err := svc.VoiceSearch(context.Background(), "phim hành động", domain.LangVietnamese)
	if err != nil {
		t.Fatalf("VoiceSearch: %v", err)
	}
	if !result.Degraded {
		t.Fatal("expected a degraded result")
	}
	if cache.puts != 0 {
		t.Fatalf("cache puts = %d, degraded results must not be stored", cache.puts)
	}
}

func TestVoiceSearchUsesTranslatorLanguageDetection(t *testing.T) {
	cache := newMockCache()
	translator := &mockTranslator{
		translateFn: func(_ context.Context, text, _ string) (string, error) {
			return text, nil
		},
	}
	svc := newTestService(t, cache, translator)

	// The mock detector reports Vietnamese for everything; with no
	// language given, the result must be stored under that tag rather
	// than the script heuristic's English.
	if _, err := svc.VoiceSearch(context.Background(), "action movie", ""); err != nil {
		t.Fatalf("VoiceSearch: %v", err)
	}
	if _, ok := cache.store[cache.key(domain.LangVietnamese, "action movie")]; !ok {
		t.Fatal("result not stored under the detected language")
	}
}
