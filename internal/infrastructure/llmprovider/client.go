package llmprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/personachat/server/internal/domain/llm"
	"github.com/personachat/server/internal/infrastructure/metrics"
	"github.com/personachat/server/internal/infrastructure/observability"
)

// Config carries the completion provider settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client implements the llm.Provider interface against an OpenAI-compatible
// chat completions endpoint.
type Client struct {
	httpClient *resty.Client
	model      string
}

// NewClient creates a Resty-backed client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 75 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if cfg.APIKey != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}

	return &Client{
		httpClient: httpClient,
		model:      cfg.Model,
	}
}

// GenerateReply calls /chat/completions with the persona system prompt
// prepended to the running transcript and returns the first choice's text.
func (c *Client) GenerateReply(ctx context.Context, systemPrompt string, messages []llm.ChatMessage) (string, error) {
	ctx, span := observability.StartCompletionSpan(ctx, c.model)
	defer span.End()

	payload := llm.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]llm.ChatMessage, 0, len(messages)+1),
	}
	if systemPrompt != "" {
		payload.Messages = append(payload.Messages, llm.ChatMessage{Role: "system", Content: systemPrompt})
	}
	payload.Messages = append(payload.Messages, messages...)

	var completion llm.ChatCompletionResponse
	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&completion).
		Post("/chat/completions")
	metrics.ProviderDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ProviderCallsTotal.WithLabelValues("error").Inc()
		err = fmt.Errorf("completion request: %w", err)
		observability.RecordError(span, err)
		return "", err
	}
	if resp.IsError() {
		metrics.ProviderCallsTotal.WithLabelValues("error").Inc()
		err = fmt.Errorf("completion api error: status %d: %s", resp.StatusCode(), resp.String())
		observability.RecordError(span, err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		metrics.ProviderCallsTotal.WithLabelValues("error").Inc()
		err = fmt.Errorf("completion api returned no choices")
		observability.RecordError(span, err)
		return "", err
	}

	metrics.ProviderCallsTotal.WithLabelValues("ok").Inc()
	return completion.Choices[0].Message.Content, nil
}

// Ensure interface compliance.
var _ llm.Provider = (*Client)(nil)
