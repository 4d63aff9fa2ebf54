package handlers

import (
	"github.com/rs/zerolog"

	"github.com/personachat/server/internal/domain/chat"
	"github.com/personachat/server/internal/domain/conversation"
	"github.com/personachat/server/internal/domain/user"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Chat         *ChatHandler
	Conversation *ConversationHandler
	Persona      *PersonaHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	chatService chat.Service,
	users user.Repository,
	conversations conversation.Repository,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Chat:         NewChatHandler(chatService, log),
		Conversation: NewConversationHandler(users, conversations, log),
		Persona:      NewPersonaHandler(log),
	}
}
