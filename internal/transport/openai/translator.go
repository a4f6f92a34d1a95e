// Package openai implements the translation capability over any
// OpenAI-compatible chat completion API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/querylens/internal/domain"
	"github.com/kailas-cloud/querylens/internal/metrics"
)

// Compile-time check: Translator implements domain.Translator.
var _ domain.Translator = (*Translator)(nil)

const (
	detectPrompt = "Identify the language of the user message. " +
		"Reply with the two-letter ISO 639-1 code only, nothing else."
	translateQueryPrompt = "Translate the user's movie search query to %s. " +
		"Keep movie titles and person names untranslated. " +
		"Reply with the translation only, nothing else."
)

// Translator detects query language and translates via chat
// completions.
type Translator struct {
	client   *openai.Client
	model    string
	user     string
	provider string
	logger   *zap.Logger
}

// Config holds the translation provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	User     string
	Provider string
	Logger   *zap.Logger
}

// NewTranslator creates an OpenAI-compatible translation provider.
func NewTranslator(cfg *Config) *Translator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Translator{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		user:     cfg.User,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// DetectLanguage returns the lowercase ISO 639-1 code of the text's
// language.
func (t *Translator) DetectLanguage(ctx context.Context, text string) (string, error) {
	out, err := t.complete(ctx, detectPrompt, text)
	if err != nil {
		return "", err
	}
	code := strings.ToLower(strings.TrimSpace(out))
	if len(code) > 2 {
		code = code[:2]
	}
	return code, nil
}

// Translate renders the text in the target language, preserving titles
// and names.
func (t *Translator) Translate(ctx context.Context, text, target string) (string, error) {
	name := languageName(target)
	out, err := t.complete(ctx, fmt.Sprintf(translateQueryPrompt, name), text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (t *Translator) complete(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
		User:        t.user,
	}

	start := time.Now()
	resp, err := t.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "error").Inc()
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrTranslationUnavailable)
	}

	metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "success").Inc()
	metrics.TranslationRequestDuration.WithLabelValues(t.provider, t.model).Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

// languageName maps the ISO codes the pipeline uses to names the model
// follows more reliably than bare codes.
func languageName(code string) string {
	switch strings.ToLower(code) {
	case "en":
		return "English"
	case "vi":
		return "Vietnamese"
	default:
		return code
	}
}

// parseAPIError extracts a readable message from the API response. All
// errors wrap domain.ErrTranslationUnavailable so the pipeline can fall
// back to offline processing.
func parseAPIError(err error) error {
	wrap := domain.ErrTranslationUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("translation API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("translation API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("translation API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("translation request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
