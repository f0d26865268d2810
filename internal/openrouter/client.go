package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mkidawa/smAIcznego/internal/config"
	"go.uber.org/zap"
)

const (
	defaultRetryCount = 3
	defaultRetryDelay = 1000 * time.Millisecond
	requestTimeout    = 120 * time.Second
)

// Client talks to the OpenRouter chat-completions endpoint.
type Client struct {
	// RetryCount is the total number of attempts; RetryDelay is the base of
	// the geometric backoff between them (delay * 2^(attempt-1)).
	RetryCount int
	RetryDelay time.Duration

	Temperature float64
	TopP        float64

	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates an OpenRouter client from configuration.
func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		RetryCount:  defaultRetryCount,
		RetryDelay:  defaultRetryDelay,
		Temperature: 0.7,
		TopP:        1,
		endpoint:    cfg.OpenRouterURL,
		apiKey:      cfg.OpenRouterAPIKey,
		model:       cfg.OpenRouterModel,
		httpClient:  &http.Client{Timeout: requestTimeout},
		log:         log,
	}
}

// Initialize verifies the endpoint accepts the configured credentials.
func (c *Client) Initialize(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach OpenRouter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to initialize OpenRouter service: %s", resp.Status)
	}
	return nil
}

// GenerateDietPlan requests a plan for the given parameters and returns the
// raw response; the caller persists it and parses the preview out of it.
func (c *Client) GenerateDietPlan(ctx context.Context, params PlanParams) (*Response, error) {
	payload := Request{
		Messages: []Message{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: BuildPrompt(params)},
		},
		Model:          c.model,
		ResponseFormat: responseSchema(),
		Temperature:    c.Temperature,
		TopP:           c.TopP,
	}

	return c.sendWithRetry(ctx, payload)
}

// sendWithRetry issues the request up to RetryCount times, waiting
// RetryDelay * 2^(attempt-1) after each failure. A bounded loop, so the
// schedule is testable without touching the network path.
func (c *Client) sendWithRetry(ctx context.Context, payload Request) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.RetryCount; attempt++ {
		resp, err := c.send(ctx, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		c.log.Warn("OpenRouter request failed",
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == c.RetryCount {
			break
		}

		delay := c.RetryDelay * (1 << (attempt - 1))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

func (c *Client) send(ctx context.Context, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API request failed: status %d %s | %s", resp.StatusCode, resp.Status, string(respBody))
	}

	if len(respBody) == 0 {
		return nil, fmt.Errorf("API returned empty response")
	}

	var parsed Response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	parsed.Raw = respBody

	return &parsed, nil
}
