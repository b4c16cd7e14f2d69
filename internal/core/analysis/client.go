// Package analysis provides a client for the external sentiment analysis backend.
//
// The backend classifies text and extracts topics; this client only moves
// requests and responses across the boundary:
//   - POST /analyze-text with {"text": ...} returns {"sentiment": ...}
//   - POST /analyze-file with a multipart "file" returns either {"error": ...}
//     or a full analysis result
//
// Requests are never retried. A rate limiter spaces requests out and a
// circuit breaker fails fast after repeated failures.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	apperrors "github.com/Am1anB/Sentiment-analysis-project/internal/core/errors"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/circuit"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/config"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/observability"
)

const (
	defaultTimeout      = 10 * time.Minute
	defaultRPS          = 2
	rateLimiterBurst    = 1
	analyzeTextPath     = "/analyze-text"
	analyzeFilePath     = "/analyze-file"
	fileFieldName       = "file"
	contentTypeJSON     = "application/json"
	headerContentType   = "Content-Type"
	maxResponseBodySize = 64 * 1024 * 1024
	errBodyReadLimit    = 1024
	errStatusBodyFmt    = "%w: status %d, body: %s"
	logFieldEndpoint    = "endpoint"
	logFieldFilename    = "filename"
)

// Client talks to the analysis backend over HTTP.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	rateLimiter    *rate.Limiter
	breaker        *circuit.Breaker
	maxUploadBytes int64
	logger         *zerolog.Logger
}

// New creates a client for cfg.BaseURL.
func New(cfg config.AnalysisConfig, logger *zerolog.Logger) *Client {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rps := cfg.RPS
	if rps <= 0 {
		rps = defaultRPS
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		rateLimiter:    rate.NewLimiter(rate.Limit(rps), rateLimiterBurst),
		breaker:        circuit.New("analysis", circuit.Config{Threshold: cfg.CircuitThreshold, ResetAfter: cfg.CircuitTimeout}, logger),
		maxUploadBytes: cfg.MaxUploadBytes,
		logger:         logger,
	}
}

// Ready reports an error while the circuit breaker is open.
func (c *Client) Ready(_ context.Context) error {
	return c.breaker.Check()
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

// AnalyzeText asks the backend for the sentiment of one text.
func (c *Client) AnalyzeText(ctx context.Context, text string) (domain.SentimentLabel, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("analyze text: %w", apperrors.ErrInvalidInput)
	}

	payload, err := json.Marshal(analyzeTextRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("encode analyze text request: %w", err)
	}

	body, err := c.post(ctx, observability.EndpointAnalyzeText, analyzeTextPath, contentTypeJSON, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	label, err := domain.DecodeSentimentResponse(body)
	if err != nil {
		c.recordDecodeFailure(observability.EndpointAnalyzeText, err)

		return "", fmt.Errorf("analyze text: %w", err)
	}

	return label, nil
}

// AnalyzeFile uploads a file for batch analysis. It returns either a complete
// result or an error; a backend-reported error is a *domain.BackendError.
func (c *Client) AnalyzeFile(ctx context.Context, filename string, file io.Reader) (*domain.AnalysisResult, error) {
	if filename == "" || file == nil {
		return nil, fmt.Errorf("analyze file: %w", apperrors.ErrInvalidInput)
	}

	form, contentType, err := c.buildMultipart(filename, file)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str(logFieldFilename, filename).Int("bytes", form.Len()).Msg("uploading file for analysis")

	body, err := c.post(ctx, observability.EndpointAnalyzeFile, analyzeFilePath, contentType, form)
	if err != nil {
		return nil, err
	}

	result, err := domain.DecodeAnalysisResponse(body)
	if err != nil {
		c.recordDecodeFailure(observability.EndpointAnalyzeFile, err)

		return nil, fmt.Errorf("analyze file %s: %w", filename, err)
	}

	return result, nil
}

func (c *Client) buildMultipart(filename string, file io.Reader) (*bytes.Buffer, string, error) {
	var form bytes.Buffer

	writer := multipart.NewWriter(&form)

	part, err := writer.CreateFormFile(fileFieldName, filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}

	src := file
	if c.maxUploadBytes > 0 {
		src = io.LimitReader(file, c.maxUploadBytes+1)
	}

	written, err := io.Copy(part, src)
	if err != nil {
		return nil, "", fmt.Errorf("copy upload %s: %w", filename, err)
	}

	if c.maxUploadBytes > 0 && written > c.maxUploadBytes {
		return nil, "", fmt.Errorf("upload %s exceeds %d bytes: %w", filename, c.maxUploadBytes, apperrors.ErrPayloadTooLarge)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &form, writer.FormDataContentType(), nil
}

func (c *Client) post(ctx context.Context, endpoint, path, contentType string, payload io.Reader) ([]byte, error) {
	if err := c.breaker.Check(); err != nil {
		observability.BackendFailures.WithLabelValues(endpoint, observability.FailureCircuit).Inc()

		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", endpoint, err)
	}

	req.Header.Set(headerContentType, contentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)

	observability.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		c.recordFailure(endpoint, observability.FailureTransport, err)

		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyReadLimit))
		statusErr := fmt.Errorf(errStatusBodyFmt, ErrServerError, resp.StatusCode, strings.TrimSpace(string(snippet)))
		c.recordFailure(endpoint, observability.FailureStatus, statusErr)

		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		c.recordFailure(endpoint, observability.FailureTransport, err)

		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	c.breaker.RecordSuccess()

	return body, nil
}

func (c *Client) recordFailure(endpoint, kind string, err error) {
	c.breaker.RecordFailure()
	observability.BackendFailures.WithLabelValues(endpoint, kind).Inc()
	c.logger.Warn().Err(err).Str(logFieldEndpoint, endpoint).Str("kind", kind).Msg("analysis backend request failed")
}

// recordDecodeFailure counts a response that arrived but could not be used.
// The backend answered, so the breaker is not tripped.
func (c *Client) recordDecodeFailure(endpoint string, err error) {
	kind := observability.FailureDecode
	if errors.Is(err, domain.ErrBackendReported) {
		kind = observability.FailureBackend
	}

	observability.BackendFailures.WithLabelValues(endpoint, kind).Inc()
	c.logger.Warn().Err(err).Str(logFieldEndpoint, endpoint).Str("kind", kind).Msg("analysis backend response rejected")
}
