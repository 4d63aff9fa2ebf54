package dto

import (
	"time"

	"github.com/personachat/server/internal/domain/conversation"
	"github.com/personachat/server/internal/domain/persona"
)

// ChatResponse is the POST /v1/chat reply. ConversationID is empty for guest
// turns; a signed-in client must adopt it for every subsequent turn.
type ChatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ConversationSummary is one sidebar listing entry.
type ConversationSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Persona string `json:"persona"`
}

// MessagePayload is one stored transcript entry.
type MessagePayload struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationPayload is the GET /v1/conversations/:id body.
type ConversationPayload struct {
	Persona  string           `json:"persona"`
	Messages []MessagePayload `json:"messages"`
}

// DeleteResponse acknowledges a conversation removal.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// PersonaPayload is one selectable persona profile. The system prompt never
// leaves the server.
type PersonaPayload struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Avatar      string        `json:"avatar"`
	Greeting    string        `json:"greeting"`
	Theme       persona.Theme `json:"theme"`
}

// FromSummaries maps domain summaries to the listing payload. It always
// yields a non-nil slice so an empty sidebar renders as [].
func FromSummaries(summaries []conversation.Summary) []ConversationSummary {
	out := make([]ConversationSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ConversationSummary{
			ID:      s.PublicID,
			Title:   s.Title,
			Persona: s.Persona,
		})
	}
	return out
}

// FromConversation maps a loaded conversation to its transcript payload.
func FromConversation(conv *conversation.Conversation) ConversationPayload {
	messages := make([]MessagePayload, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		messages = append(messages, MessagePayload{
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return ConversationPayload{Persona: conv.Persona, Messages: messages}
}

// FromPersonas maps the persona registry to its public payload.
func FromPersonas(personas []persona.Persona) []PersonaPayload {
	out := make([]PersonaPayload, 0, len(personas))
	for _, p := range personas {
		out = append(out, PersonaPayload{
			ID:          p.Key,
			Name:        p.Name,
			Description: p.Description,
			Avatar:      p.Avatar,
			Greeting:    p.Greeting,
			Theme:       p.Theme,
		})
	}
	return out
}
