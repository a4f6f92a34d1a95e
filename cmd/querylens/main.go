package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/querylens/internal/config"
	"github.com/kailas-cloud/querylens/internal/corpus"
	"github.com/kailas-cloud/querylens/internal/db"
	dbRedis "github.com/kailas-cloud/querylens/internal/db/redis"
	"github.com/kailas-cloud/querylens/internal/domain"
	logpkg "github.com/kailas-cloud/querylens/internal/logger"
	"github.com/kailas-cloud/querylens/internal/metrics"
	"github.com/kailas-cloud/querylens/internal/nlp/intent"
	"github.com/kailas-cloud/querylens/internal/repository/qcache"
	chiTransport "github.com/kailas-cloud/querylens/internal/transport/chi"
	openaiTr "github.com/kailas-cloud/querylens/internal/transport/openai"
	healthuc "github.com/kailas-cloud/querylens/internal/usecase/health"
	queryuc "github.com/kailas-cloud/querylens/internal/usecase/query"
	"github.com/kailas-cloud/querylens/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting querylens API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Bool("translation_enabled", cfg.Translation.Enabled),
	)

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// Train the models from the built-in corpus before serving traffic.
	models, err := queryuc.TrainModels(
		corpus.TrainingExamples(), corpus.Documents(), intent.MarginConfig{},
	)
	if err != nil {
		logger.Fatal("Failed to train models", zap.Error(err))
	}
	logger.Info("Models trained",
		zap.Int("training_examples", len(corpus.TrainingExamples())),
		zap.Int("documents", len(corpus.Documents())),
		zap.Int("tfidf_vocab", models.TFIDF.VocabSize()),
	)

	ctx := context.Background()

	// Result cache: redis shares results across replicas, memory is
	// per-process.
	var cache queryuc.Cache
	var store db.Store
	switch cfg.Cache.Backend {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to redis")

		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		cache = qcache.NewKV(store, ttl, metrics.PipelineCacheTotal, logger)
	default:
		cache = qcache.NewMemory(cfg.Cache.Capacity, metrics.PipelineCacheTotal)
	}

	// Pass nil interface (not typed nil pointer!) if translation is disabled.
	var translator domain.Translator
	if cfg.Translation.Enabled {
		translator = openaiTr.NewTranslator(&openaiTr.Config{
			APIKey:   cfg.Translation.APIKey,
			BaseURL:  cfg.Translation.BaseURL,
			Model:    cfg.Translation.Model,
			Provider: cfg.Translation.Provider,
			Logger:   logger,
		})
		logger.Info("Translator created",
			zap.String("provider", cfg.Translation.Provider),
			zap.String("model", cfg.Translation.Model),
		)
	}

	querySvc := queryuc.New(models, cache, translator, logger, queryuc.Config{
		OverrideThreshold:  cfg.Ensemble.OverrideThreshold,
		OverrideConfidence: cfg.Ensemble.OverrideConfidence,
		MaxExpansions:      cfg.Pipeline.MaxExpansions,
		SuggestionLimit:    cfg.Pipeline.SuggestionLimit,
	})

	// Health service pings the database only for the redis backend.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}
	healthSvc := healthuc.New(pinger, querySvc)

	server := chiTransport.NewServer(querySvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
