package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/querylens/internal/domain"
	healthuc "github.com/kailas-cloud/querylens/internal/usecase/health"
	queryuc "github.com/kailas-cloud/querylens/internal/usecase/query"
	"github.com/kailas-cloud/querylens/internal/version"
)

// maxBatchCandidates bounds candidate lists on batch endpoints.
const maxBatchCandidates = 100

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeModelNotReady    = "model_not_ready"
	codeInternalError    = "internal_error"
)

// errorResponse is the uniform error body for every endpoint.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the query understanding pipeline over HTTP.
type Server struct {
	query         *queryuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(query *queryuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		query:  query,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUntrainedModel, http.StatusServiceUnavailable, codeModelNotReady),
	}
	return s
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/nlp", func(r chi.Router) {
		r.Post("/voice-search", s.VoiceSearch)
		r.Post("/intent", s.ClassifyIntent)
		r.Post("/analyze", s.AnalyzeQuery)
		r.Post("/similarity", s.Similarity)
		r.Post("/batch-similarity", s.BatchSimilarity)
		r.Post("/fuzzy-match", s.FuzzyMatch)
		r.Post("/expand-query", s.ExpandQuery)
		r.Post("/preprocess", s.Preprocess)
		r.Get("/suggest", s.Suggest)
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "querylens",
		"version": version.Version,
		"endpoints": []string{
			"/api/nlp/voice-search",
			"/api/nlp/intent",
			"/api/nlp/analyze",
			"/api/nlp/similarity",
			"/api/nlp/batch-similarity",
			"/api/nlp/fuzzy-match",
			"/api/nlp/expand-query",
			"/api/nlp/preprocess",
			"/api/nlp/suggest",
		},
	})
}

// VoiceSearch handles POST /api/nlp/voice-search.
func (s *Server) VoiceSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "text is required")
		return
	}

	result, err := s.query.VoiceSearch(r.Context(), req.Text, domain.Language(req.Language))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ClassifyIntent handles POST /api/nlp/intent.
func (s *Server) ClassifyIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "text is required")
		return
	}

	result, err := s.query.ClassifyIntent(r.Context(), req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AnalyzeQuery handles POST /api/nlp/analyze.
func (s *Server) AnalyzeQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}

	analysis, err := s.query.Analyze(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// Similarity handles POST /api/nlp/similarity.
func (s *Server) Similarity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text1  string `json:"text1"`
		Text2  string `json:"text2"`
		Method string `json:"method"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text1 == "" || req.Text2 == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "text1 and text2 are required")
		return
	}

	report, err := s.query.Similarity(r.Context(), req.Text1, req.Text2, req.Method)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// BatchSimilarity handles POST /api/nlp/batch-similarity.
func (s *Server) BatchSimilarity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query      string   `json:"query"`
		Candidates []string `json:"candidates"`
		TopK       int      `json:"top_k"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}
	if len(req.Candidates) == 0 || len(req.Candidates) > maxBatchCandidates {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"candidates count must be between 1 and 100")
		return
	}

	matches := s.query.MostSimilar(r.Context(), req.Query, req.Candidates, req.TopK)
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   req.Query,
		"matches": matches,
	})
}

// FuzzyMatch handles POST /api/nlp/fuzzy-match.
func (s *Server) FuzzyMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query      string   `json:"query"`
		Candidates []string `json:"candidates"`
		Threshold  float64  `json:"threshold"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}
	if len(req.Candidates) == 0 || len(req.Candidates) > maxBatchCandidates {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"candidates count must be between 1 and 100")
		return
	}

	matches := s.query.FuzzyMatch(r.Context(), req.Query, req.Candidates, req.Threshold)
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   req.Query,
		"matches": matches,
	})
}

// ExpandQuery handles POST /api/nlp/expand-query.
func (s *Server) ExpandQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string `json:"query"`
		QueryType string `json:"query_type"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}

	queryType := domain.QueryType(req.QueryType)
	var people []string
	if queryType == "" {
		// No explicit type: derive it from the query itself.
		analysis, err := s.query.Analyze(r.Context(), req.Query)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		queryType = analysis.Type
		people = analysis.Entities.People
	}

	result, _ := s.query.ProcessQuery(r.Context(), req.Query, queryType, people)
	writeJSON(w, http.StatusOK, result)
}

// Preprocess handles POST /api/nlp/preprocess.
func (s *Server) Preprocess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "text is required")
		return
	}

	writeJSON(w, http.StatusOK, s.query.Preprocess(req.Text))
}

// Suggest handles GET /api/nlp/suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	partial := r.URL.Query().Get("q")
	if partial == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "q is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":       partial,
		"suggestions": s.query.Suggester().Suggest(partial, 0),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrUntrainedModel,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
