// Package ai calls a chat-completion API to write product descriptions.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/config"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/telemetry"
)

var _ catalogapp.DescriptionGenerator = (*OpenAIClient)(nil)

// ErrEmptyCompletion is returned when the API answers without a message
var ErrEmptyCompletion = errors.New("completion has no message content")

// UpstreamError is a non-2xx answer from the API
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("chat completion failed with status %d: %s", e.StatusCode, e.Body)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message *chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAIClient implements DescriptionGenerator over the OpenAI chat
// completions endpoint. Calls go through a circuit breaker that opens after
// a majority of recent calls failed.
type OpenAIClient struct {
	apiKey      string
	endpoint    string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker[string]
	logger      *zap.Logger
}

// NewOpenAIClient creates the client from configuration. An empty API key
// yields a client whose Available reports false.
func NewOpenAIClient(cfg config.AIConfig, logger *zap.Logger) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:      cfg.APIKey,
		endpoint:    strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
	c.breaker = newBreaker("ai-description", logger)
	return c
}

func newBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker[string] {
	var st gobreaker.Settings
	st.Name = name
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		logger.Warn("Circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
	}
	// Bad input is the caller's fault, not the upstream's
	st.IsSuccessful = func(err error) bool {
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			return upstream.StatusCode >= 400 && upstream.StatusCode < 500 &&
				upstream.StatusCode != http.StatusTooManyRequests
		}
		return err == nil
	}
	return gobreaker.NewCircuitBreaker[string](st)
}

// Available reports whether an API key is configured
func (c *OpenAIClient) Available() bool {
	return c.apiKey != ""
}

// Generate sends one chat completion and returns the first message
func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if !c.Available() {
		return "", errors.New("ai api key is not configured")
	}
	ctx, span := telemetry.StartSpan(ctx, "ai.chat_completion", trace.SpanKindClient,
		attribute.String("ai.model", c.model),
		attribute.String("ai.breaker_state", c.breaker.State().String()),
	)

	text, err := c.breaker.Execute(func() (string, error) {
		return c.complete(ctx, systemPrompt, prompt)
	})
	telemetry.EndSpan(span, err)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *OpenAIClient) complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Chat completion API error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(body, 512)))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(truncate(body, 512))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message == nil {
		return "", ErrEmptyCompletion
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
