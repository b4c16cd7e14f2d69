package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	apperrors "github.com/Am1anB/Sentiment-analysis-project/internal/core/errors"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/circuit"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/config"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/observability"
)

const (
	defaultTimeout     = 2 * time.Minute
	defaultRPS         = 1
	rateLimiterBurst   = 1
	summaryTemperature = 0.3
)

type openaiSummarizer struct {
	client      *openai.Client
	model       string
	language    string
	rateLimiter *rate.Limiter
	breaker     *circuit.Breaker
	logger      *zerolog.Logger
}

// NewOpenAI creates a summarizer backed by an OpenAI-compatible chat API.
// cfg.BaseURL points it at a compatible gateway.
func NewOpenAI(cfg config.LLMConfig, logger *zerolog.Logger) Summarizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	rps := cfg.RPS
	if rps <= 0 {
		rps = defaultRPS
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &openaiSummarizer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		language:    cfg.Language,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), rateLimiterBurst),
		breaker:     circuit.New(providerOpenAI, circuit.Config{Threshold: cfg.CircuitThreshold, ResetAfter: cfg.CircuitTimeout}, logger),
		logger:      logger,
	}
}

func (s *openaiSummarizer) Name() string {
	return providerOpenAI
}

func (s *openaiSummarizer) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	language := resolveLanguage(req, s.language)

	topicsJSON, err := encodeTopicTexts(req.Topics)
	if err != nil {
		return "", err
	}

	if err := s.breaker.Check(); err != nil {
		observability.SummariesGenerated.WithLabelValues(observability.SummaryStatusError).Inc()

		return "", err
	}

	if err := s.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf(errRateLimiter, err)
	}

	s.logger.Debug().
		Str(logKeyModel, s.model).
		Str(logKeyLanguage, language).
		Int(logKeyTopics, len(req.Topics)).
		Msg("requesting executive summary")

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: summaryTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(language)},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(req.Stats, topicsJSON, language)},
		},
	})

	observability.LLMRequestDuration.WithLabelValues(s.model).Observe(time.Since(start).Seconds())

	if err != nil {
		s.breaker.RecordFailure()
		observability.SummariesGenerated.WithLabelValues(observability.SummaryStatusError).Inc()

		return "", fmt.Errorf(errOpenAIChatCompletion, err)
	}

	s.breaker.RecordSuccess()

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		observability.SummariesGenerated.WithLabelValues(observability.SummaryStatusError).Inc()

		return "", fmt.Errorf("executive summary: %w", apperrors.ErrEmptyResponse)
	}

	observability.SummariesGenerated.WithLabelValues(observability.SummaryStatusOK).Inc()

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
