package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/personachat/server/internal/domain/conversation"
	"github.com/personachat/server/internal/domain/llm"
	"github.com/personachat/server/internal/domain/persona"
	"github.com/personachat/server/internal/domain/user"
	"github.com/personachat/server/internal/infrastructure/metrics"
	"github.com/personachat/server/internal/infrastructure/observability"
	"github.com/personachat/server/internal/utils/apperrors"
)

// SessionMode classifies one inbound turn. It is computed once per request
// and drives every persistence decision.
type SessionMode int

const (
	// ModeGuest has no resolved identity; nothing is persisted.
	ModeGuest SessionMode = iota
	// ModeAuthenticatedNew has an identity and no conversation ID; a new
	// conversation is seeded.
	ModeAuthenticatedNew
	// ModeAuthenticatedExisting has an identity and a conversation ID; the
	// turn is appended.
	ModeAuthenticatedExisting
)

func (m SessionMode) String() string {
	switch m {
	case ModeGuest:
		return "guest"
	case ModeAuthenticatedNew:
		return "authenticated_new"
	case ModeAuthenticatedExisting:
		return "authenticated_existing"
	}
	return "unknown"
}

// TurnParams carries one chat submission: the full visible transcript
// including the newest user turn, the persona key, an optional existing
// conversation public ID and the optionally resolved identity.
type TurnParams struct {
	Messages       []llm.ChatMessage
	Persona        string
	ConversationID string
	Identity       *user.Identity
}

// TurnResult is the reply plus the conversation ID the client must use for
// all subsequent turns of this session.
type TurnResult struct {
	Reply          string
	ConversationID string
	Mode           SessionMode
}

// Service is the turn orchestrator contract.
type Service interface {
	SendTurn(ctx context.Context, params TurnParams) (*TurnResult, error)
}

// ServiceImpl resolves the session mode, invokes the completion gateway and
// applies the mode's persistence path.
type ServiceImpl struct {
	users         user.Repository
	conversations conversation.Repository
	provider      llm.Provider
	log           zerolog.Logger
}

// NewService wires dependencies.
func NewService(
	users user.Repository,
	conversations conversation.Repository,
	provider llm.Provider,
	log zerolog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		users:         users,
		conversations: conversations,
		provider:      provider,
		log:           log.With().Str("component", "chat-service").Logger(),
	}
}

// SendTurn handles one chat submission end to end. The completion call is
// awaited before any write, so a gateway failure never leaves a dangling
// user-only message in storage.
func (s *ServiceImpl) SendTurn(ctx context.Context, params TurnParams) (*TurnResult, error) {
	if err := validateTurn(params); err != nil {
		return nil, err
	}

	mode := resolveMode(params)
	p := persona.Lookup(params.Persona)

	ctx, span := observability.StartTurnSpan(ctx, p.Key, mode.String())
	defer span.End()

	var owner *user.User
	var conv *conversation.Conversation
	var err error

	switch mode {
	case ModeAuthenticatedNew, ModeAuthenticatedExisting:
		owner, err = s.users.CreateIfAbsent(ctx, params.Identity.Subject, params.Identity.Email)
		if err != nil {
			return s.fail(span, mode, err)
		}
	}

	// Ownership is re-validated before the gateway call so a bad ID fails
	// fast and never burns a completion.
	if mode == ModeAuthenticatedExisting {
		conv, err = s.conversations.FindOwned(ctx, params.ConversationID, owner.ID)
		if err != nil {
			return s.fail(span, mode, err)
		}
	}

	reply, err := s.provider.GenerateReply(ctx, p.SystemPrompt, params.Messages)
	if err != nil {
		return s.fail(span, mode, apperrors.Provider("completion gateway call failed", err))
	}

	result := &TurnResult{Reply: reply, ConversationID: params.ConversationID, Mode: mode}

	switch mode {
	case ModeGuest:
		// Pass the supplied ID through untouched; guests never create rows.
	case ModeAuthenticatedNew:
		conv, err = s.seedConversation(ctx, owner, p.Key, params.Messages, reply)
		if err != nil {
			return s.fail(span, mode, err)
		}
		result.ConversationID = conv.PublicID
	case ModeAuthenticatedExisting:
		if err := s.appendTurn(ctx, conv, params.Messages, reply); err != nil {
			return s.fail(span, mode, err)
		}
	}

	observability.AddConversationAttr(span, result.ConversationID)
	metrics.ChatTurnsTotal.WithLabelValues(mode.String(), "ok").Inc()
	s.log.Info().
		Str("mode", mode.String()).
		Str("persona", p.Key).
		Str("conversation_id", result.ConversationID).
		Msg("turn completed")
	return result, nil
}

func (s *ServiceImpl) fail(span observability.Span, mode SessionMode, err error) (*TurnResult, error) {
	metrics.ChatTurnsTotal.WithLabelValues(mode.String(), "error").Inc()
	observability.RecordError(span, err)
	return nil, err
}

func (s *ServiceImpl) seedConversation(ctx context.Context, owner *user.User, personaKey string, transcript []llm.ChatMessage, reply string) (*conversation.Conversation, error) {
	messages := toStoredMessages(transcript, reply)
	conv := &conversation.Conversation{
		PublicID: newPublicID(),
		UserID:   owner.ID,
		Persona:  personaKey,
		Title:    conversation.DeriveTitle(messages),
	}
	if err := s.conversations.CreateWithMessages(ctx, conv, messages); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *ServiceImpl) appendTurn(ctx context.Context, conv *conversation.Conversation, transcript []llm.ChatMessage, reply string) error {
	now := time.Now()
	userMsg := conversation.Message{
		Role:      conversation.RoleUser,
		Content:   transcript[len(transcript)-1].Content,
		CreatedAt: now,
	}
	assistantMsg := conversation.Message{
		Role:      conversation.RoleAssistant,
		Content:   reply,
		CreatedAt: now.Add(time.Millisecond),
	}
	return s.conversations.AppendTurn(ctx, conv.ID, userMsg, assistantMsg)
}

func validateTurn(params TurnParams) error {
	if len(params.Messages) == 0 {
		return apperrors.Validation("messages must not be empty")
	}
	if strings.TrimSpace(params.Persona) == "" {
		return apperrors.Validation("persona is required")
	}
	for i, m := range params.Messages {
		if !conversation.Role(m.Role).Valid() {
			return apperrors.Validation(fmt.Sprintf("messages[%d] has unsupported role %q", i, m.Role))
		}
		if strings.TrimSpace(m.Content) == "" {
			return apperrors.Validation(fmt.Sprintf("messages[%d] has empty content", i))
		}
	}
	if params.Messages[len(params.Messages)-1].Role != string(conversation.RoleUser) {
		return apperrors.Validation("the newest message must be a user turn")
	}
	return nil
}

func resolveMode(params TurnParams) SessionMode {
	if params.Identity == nil {
		return ModeGuest
	}
	if strings.TrimSpace(params.ConversationID) == "" {
		return ModeAuthenticatedNew
	}
	return ModeAuthenticatedExisting
}

// toStoredMessages converts the submitted transcript plus the generated
// reply into the seeding message set. Creation stamps are spread by a
// millisecond so read-back order always matches submission order.
func toStoredMessages(transcript []llm.ChatMessage, reply string) []conversation.Message {
	base := time.Now()
	messages := make([]conversation.Message, 0, len(transcript)+1)
	for i, m := range transcript {
		messages = append(messages, conversation.Message{
			Role:      conversation.Role(m.Role),
			Content:   m.Content,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		})
	}
	messages = append(messages, conversation.Message{
		Role:      conversation.RoleAssistant,
		Content:   reply,
		CreatedAt: base.Add(time.Duration(len(transcript)) * time.Millisecond),
	})
	return messages
}

func newPublicID() string {
	return fmt.Sprintf("conv_%s", uuid.NewString())
}
