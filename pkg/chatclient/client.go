package chatclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Message is one transcript entry in the chat API's wire shape.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the POST /v1/chat body.
type ChatRequest struct {
	Messages       []Message `json:"messages"`
	Persona        string    `json:"persona"`
	ConversationID *string   `json:"conversation_id,omitempty"`
}

// ChatResponse is the POST /v1/chat reply.
type ChatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ConversationSummary is one sidebar entry.
type ConversationSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Persona string `json:"persona"`
}

// ConversationPayload is a stored transcript.
type ConversationPayload struct {
	Persona  string    `json:"persona"`
	Messages []Message `json:"messages"`
}

// Persona is one selectable assistant profile.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Greeting    string `json:"greeting"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// APIClient is a thin HTTP client for the chat service.
type APIClient struct {
	httpClient *resty.Client
}

// NewAPIClient constructs a client for the given server base URL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(90 * time.Second),
	}
}

// SetToken attaches a bearer token to every subsequent request. An empty
// token clears it.
func (c *APIClient) SetToken(token string) {
	c.httpClient.SetAuthToken(token)
}

// SendChat submits one turn.
func (c *APIClient) SendChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	var apiErr apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1/chat")
	if err != nil {
		return nil, fmt.Errorf("send chat: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), apiErr)
	}
	return &out, nil
}

// ListConversations fetches the caller's sidebar.
func (c *APIClient) ListConversations(ctx context.Context) ([]ConversationSummary, error) {
	var out []ConversationSummary
	var apiErr apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get("/v1/conversations")
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), apiErr)
	}
	return out, nil
}

// GetConversation fetches one stored transcript.
func (c *APIClient) GetConversation(ctx context.Context, id string) (*ConversationPayload, error) {
	var out ConversationPayload
	var apiErr apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		SetPathParam("id", id).
		Get("/v1/conversations/{id}")
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), apiErr)
	}
	return &out, nil
}

// DeleteConversation removes a stored conversation.
func (c *APIClient) DeleteConversation(ctx context.Context, id string) error {
	var apiErr apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetError(&apiErr).
		SetPathParam("id", id).
		Delete("/v1/conversations/{id}")
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), apiErr)
	}
	return nil
}

// ListPersonas fetches the persona catalog.
func (c *APIClient) ListPersonas(ctx context.Context) ([]Persona, error) {
	var out []Persona
	var apiErr apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get("/v1/personas")
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), apiErr)
	}
	return out, nil
}

func statusError(status int, apiErr apiError) error {
	if apiErr.Error.Message != "" {
		return fmt.Errorf("api error: status %d: %s", status, apiErr.Error.Message)
	}
	return fmt.Errorf("api error: status %d", status)
}
