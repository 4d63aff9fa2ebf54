package chat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/personachat/server/internal/domain/chat"
	"github.com/personachat/server/internal/domain/conversation"
	"github.com/personachat/server/internal/domain/llm"
	"github.com/personachat/server/internal/domain/persona"
	"github.com/personachat/server/internal/domain/user"
	"github.com/personachat/server/internal/utils/apperrors"
)

// MockUserRepository is a mock implementation of user.Repository.
type MockUserRepository struct {
	CreateIfAbsentFunc   func(ctx context.Context, externalID, email string) (*user.User, error)
	FindByExternalIDFunc func(ctx context.Context, externalID string) (*user.User, error)
}

func (m *MockUserRepository) CreateIfAbsent(ctx context.Context, externalID, email string) (*user.User, error) {
	if m.CreateIfAbsentFunc != nil {
		return m.CreateIfAbsentFunc(ctx, externalID, email)
	}
	return &user.User{ID: 1, ExternalID: externalID, Email: email}, nil
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	if m.FindByExternalIDFunc != nil {
		return m.FindByExternalIDFunc(ctx, externalID)
	}
	return nil, nil
}

// MockConversationRepository is a mock implementation of conversation.Repository.
type MockConversationRepository struct {
	CreateWithMessagesFunc func(ctx context.Context, conv *conversation.Conversation, messages []conversation.Message) error
	ListByUserFunc         func(ctx context.Context, userID uint) ([]conversation.Summary, error)
	GetByPublicIDFunc      func(ctx context.Context, publicID string) (*conversation.Conversation, error)
	FindOwnedFunc          func(ctx context.Context, publicID string, userID uint) (*conversation.Conversation, error)
	AppendTurnFunc         func(ctx context.Context, conversationID uint, userMsg, assistantMsg conversation.Message) error
	DeleteOwnedFunc        func(ctx context.Context, publicID string, userID uint) error
}

func (m *MockConversationRepository) CreateWithMessages(ctx context.Context, conv *conversation.Conversation, messages []conversation.Message) error {
	if m.CreateWithMessagesFunc != nil {
		return m.CreateWithMessagesFunc(ctx, conv, messages)
	}
	return nil
}

func (m *MockConversationRepository) ListByUser(ctx context.Context, userID uint) ([]conversation.Summary, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockConversationRepository) GetByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	if m.GetByPublicIDFunc != nil {
		return m.GetByPublicIDFunc(ctx, publicID)
	}
	return nil, nil
}

func (m *MockConversationRepository) FindOwned(ctx context.Context, publicID string, userID uint) (*conversation.Conversation, error) {
	if m.FindOwnedFunc != nil {
		return m.FindOwnedFunc(ctx, publicID, userID)
	}
	return nil, nil
}

func (m *MockConversationRepository) AppendTurn(ctx context.Context, conversationID uint, userMsg, assistantMsg conversation.Message) error {
	if m.AppendTurnFunc != nil {
		return m.AppendTurnFunc(ctx, conversationID, userMsg, assistantMsg)
	}
	return nil
}

func (m *MockConversationRepository) DeleteOwned(ctx context.Context, publicID string, userID uint) error {
	if m.DeleteOwnedFunc != nil {
		return m.DeleteOwnedFunc(ctx, publicID, userID)
	}
	return nil
}

// StubProvider is a canned llm.Provider.
type StubProvider struct {
	GenerateReplyFunc func(ctx context.Context, systemPrompt string, messages []llm.ChatMessage) (string, error)
}

func (p *StubProvider) GenerateReply(ctx context.Context, systemPrompt string, messages []llm.ChatMessage) (string, error) {
	if p.GenerateReplyFunc != nil {
		return p.GenerateReplyFunc(ctx, systemPrompt, messages)
	}
	return "stub reply", nil
}

func userTurn(content string) []llm.ChatMessage {
	return []llm.ChatMessage{{Role: "user", Content: content}}
}

func TestSendTurn_GuestNeverPersists(t *testing.T) {
	users := &MockUserRepository{
		CreateIfAbsentFunc: func(ctx context.Context, externalID, email string) (*user.User, error) {
			t.Error("guest turn must not upsert a user")
			return nil, nil
		},
	}
	conversations := &MockConversationRepository{
		CreateWithMessagesFunc: func(ctx context.Context, conv *conversation.Conversation, messages []conversation.Message) error {
			t.Error("guest turn must not create a conversation")
			return nil
		},
		AppendTurnFunc: func(ctx context.Context, conversationID uint, userMsg, assistantMsg conversation.Message) error {
			t.Error("guest turn must not append messages")
			return nil
		},
	}

	service := chat.NewService(users, conversations, &StubProvider{}, zerolog.Nop())

	result, err := service.SendTurn(context.Background(), chat.TurnParams{
		Messages:       userTurn("hello"),
		Persona:        "hitesh",
		ConversationID: "conv_local",
	})
	if err != nil {
		t.Fatalf("SendTurn failed: %v", err)
	}
	if result.Mode != chat.ModeGuest {
		t.Errorf("Expected guest mode, got %v", result.Mode)
	}
	if result.Reply != "stub reply" {
		t.Errorf("Expected stub reply, got %q", result.Reply)
	}
	if result.ConversationID != "conv_local" {
		t.Errorf("Guest turn must echo the supplied conversation ID, got %q", result.ConversationID)
	}
}

func TestSendTurn_NewConversationSeeded(t *testing.T) {
	var seeded *conversation.Conversation
	var seedMessages []conversation.Message

	users := &MockUserRepository{
		CreateIfAbsentFunc: func(ctx context.Context, externalID, email string) (*user.User, error) {
			return &user.User{ID: 42, ExternalID: externalID, Email: email}, nil
		},
	}
	conversations := &MockConversationRepository{
		CreateWithMessagesFunc: func(ctx context.Context, conv *conversation.Conversation, messages []conversation.Message) error {
			seeded = conv
			seedMessages = messages
			return nil
		},
	}
	provider := &StubProvider{
		GenerateReplyFunc: func(ctx context.Context, systemPrompt string, messages []llm.ChatMessage) (string, error) {
			return "haanji, chai ready hai", nil
		},
	}

	service := chat.NewService(users, conversations, provider, zerolog.Nop())

	result, err := service.SendTurn(context.Background(), chat.TurnParams{
		Messages: userTurn("how do I learn go"),
		Persona:  "hitesh",
		Identity: &user.Identity{Subject: "user_abc", Email: "a@b.c"},
	})
	if err != nil {
		t.Fatalf("SendTurn failed: %v", err)
	}
	if result.Mode != chat.ModeAuthenticatedNew {
		t.Errorf("Expected authenticated-new mode, got %v", result.Mode)
	}
	if seeded == nil {
		t.Fatal("Expected a conversation to be seeded")
	}
	if !strings.HasPrefix(seeded.PublicID, "conv_") {
		t.Errorf("Expected conv_ prefixed public ID, got %q", seeded.PublicID)
	}
	if result.ConversationID != seeded.PublicID {
		t.Errorf("Result must carry the new conversation ID, got %q", result.ConversationID)
	}
	if seeded.UserID != 42 {
		t.Errorf("Expected owner 42, got %d", seeded.UserID)
	}
	if seeded.Title != "how do I learn go..." {
		t.Errorf("Unexpected title %q", seeded.Title)
	}
	if len(seedMessages) != 2 {
		t.Fatalf("Expected transcript plus reply, got %d messages", len(seedMessages))
	}
	if seedMessages[1].Role != conversation.RoleAssistant || seedMessages[1].Content != "haanji, chai ready hai" {
		t.Errorf("Last seeded message must be the reply, got %+v", seedMessages[1])
	}
	if !seedMessages[0].CreatedAt.Before(seedMessages[1].CreatedAt) {
		t.Error("Seeded message stamps must be strictly ascending")
	}
}

func TestSendTurn_ExistingConversationAppends(t *testing.T) {
	var appendedUser, appendedAssistant conversation.Message
	var appendedTo uint

	users := &MockUserRepository{
		CreateIfAbsentFunc: func(ctx context.Context, externalID, email string) (*user.User, error) {
			return &user.User{ID: 7, ExternalID: externalID}, nil
		},
	}
	conversations := &MockConversationRepository{
		FindOwnedFunc: func(ctx context.Context, publicID string, userID uint) (*conversation.Conversation, error) {
			if publicID != "conv_existing" || userID != 7 {
				t.Errorf("Unexpected ownership lookup: %q / %d", publicID, userID)
			}
			return &conversation.Conversation{ID: 99, PublicID: publicID, UserID: userID}, nil
		},
		AppendTurnFunc: func(ctx context.Context, conversationID uint, userMsg, assistantMsg conversation.Message) error {
			appendedTo = conversationID
			appendedUser = userMsg
			appendedAssistant = assistantMsg
			return nil
		},
		CreateWithMessagesFunc: func(ctx context.Context, conv *conversation.Conversation, messages []conversation.Message) error {
			t.Error("append path must not seed a new conversation")
			return nil
		},
	}

	service := chat.NewService(users, conversations, &StubProvider{}, zerolog.Nop())

	transcript := []llm.ChatMessage{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "reply one"},
		{Role: "user", Content: "second question"},
	}
	result, err := service.SendTurn(context.Background(), chat.TurnParams{
		Messages:       transcript,
		Persona:        "piyush",
		ConversationID: "conv_existing",
		Identity:       &user.Identity{Subject: "user_abc"},
	})
	if err != nil {
		t.Fatalf("SendTurn failed: %v", err)
	}
	if result.Mode != chat.ModeAuthenticatedExisting {
		t.Errorf("Expected authenticated-existing mode, got %v", result.Mode)
	}
	if result.ConversationID != "conv_existing" {
		t.Errorf("Expected the supplied conversation ID back, got %q", result.ConversationID)
	}
	if appendedTo != 99 {
		t.Errorf("Expected append to conversation 99, got %d", appendedTo)
	}
	if appendedUser.Content != "second question" {
		t.Errorf("Only the newest user turn is appended, got %q", appendedUser.Content)
	}
	if appendedAssistant.Content != "stub reply" {
		t.Errorf("Expected the reply appended, got %q", appendedAssistant.Content)
	}
	if !appendedUser.CreatedAt.Before(appendedAssistant.CreatedAt) {
		t.Error("Appended stamps must keep the user turn before the reply")
	}
}

func TestSendTurn_UnknownConversationFailsBeforeProviderCall(t *testing.T) {
	providerCalled := false

	conversations := &MockConversationRepository{
		FindOwnedFunc: func(ctx context.Context, publicID string, userID uint) (*conversation.Conversation, error) {
			return nil, apperrors.NotFound("conversation not found")
		},
	}
	provider := &StubProvider{
		GenerateReplyFunc: func(ctx context.Context, systemPrompt string, messages []llm.ChatMessage) (string, error) {
			providerCalled = true
			return "should not happen", nil
		},
	}

	service := chat.NewService(&MockUserRepository{}, conversations, provider, zerolog.Nop())

	_, err := service.SendTurn(context.Background(), chat.TurnParams{
		Messages:       userTurn("hi"),
		Persona:        "hitesh",
		ConversationID: "conv_gone",
		Identity:       &user.Identity{Subject: "user_abc"},
	})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("Expected not-found, got %v", err)
	}
	if providerCalled {
		t.Error("A bad conversation ID must never reach the completion provider")
	}
}

func TestSendTurn_ProviderFailureLeavesNothingBehind(t *testing.T) {
	conversations := &MockConversationRepository{
		CreateWithMessagesFunc: func(ctx context.Context, conv *conversation.Conversation, messages []conversation.Message) error {
			t.Error("a failed completion must not seed a conversation")
			return nil
		},
	}
	provider := &StubProvider{
		GenerateReplyFunc: func(ctx context.Context, systemPrompt string, messages []llm.ChatMessage) (string, error) {
			return "", apperrors.Provider("upstream exploded", nil)
		},
	}

	service := chat.NewService(&MockUserRepository{}, conversations, provider, zerolog.Nop())

	_, err := service.SendTurn(context.Background(), chat.TurnParams{
		Messages: userTurn("hi"),
		Persona:  "hitesh",
		Identity: &user.Identity{Subject: "user_abc"},
	})
	if err == nil {
		t.Fatal("Expected an error")
	}
	if apperrors.KindOf(err) != apperrors.KindProvider {
		t.Errorf("Expected provider kind, got %v", apperrors.KindOf(err))
	}
}

func TestSendTurn_UnknownPersonaFallsBackToDefault(t *testing.T) {
	var promptSeen string

	var seeded *conversation.Conversation
	conversations := &MockConversationRepository{
		CreateWithMessagesFunc: func(ctx context.Context, conv *conversation.Conversation, messages []conversation.Message) error {
			seeded = conv
			return nil
		},
	}
	provider := &StubProvider{
		GenerateReplyFunc: func(ctx context.Context, systemPrompt string, messages []llm.ChatMessage) (string, error) {
			promptSeen = systemPrompt
			return "ok", nil
		},
	}

	service := chat.NewService(&MockUserRepository{}, conversations, provider, zerolog.Nop())

	_, err := service.SendTurn(context.Background(), chat.TurnParams{
		Messages: userTurn("hello"),
		Persona:  "nonexistent",
		Identity: &user.Identity{Subject: "user_abc"},
	})
	if err != nil {
		t.Fatalf("SendTurn failed: %v", err)
	}

	want := persona.Lookup(persona.DefaultKey)
	if promptSeen != want.SystemPrompt {
		t.Error("Unknown persona must use the default persona's system prompt")
	}
	if seeded == nil || seeded.Persona != persona.DefaultKey {
		t.Errorf("Stored persona must be the resolved key, got %+v", seeded)
	}
}

func TestSendTurn_Validation(t *testing.T) {
	service := chat.NewService(&MockUserRepository{}, &MockConversationRepository{}, &StubProvider{}, zerolog.Nop())

	cases := []struct {
		name   string
		params chat.TurnParams
	}{
		{"empty transcript", chat.TurnParams{Persona: "hitesh"}},
		{"missing persona", chat.TurnParams{Messages: userTurn("hi")}},
		{"unsupported role", chat.TurnParams{
			Messages: []llm.ChatMessage{{Role: "system", Content: "nope"}, {Role: "user", Content: "hi"}},
			Persona:  "hitesh",
		}},
		{"blank content", chat.TurnParams{
			Messages: []llm.ChatMessage{{Role: "user", Content: "   "}},
			Persona:  "hitesh",
		}},
		{"transcript ending on assistant", chat.TurnParams{
			Messages: []llm.ChatMessage{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}},
			Persona:  "hitesh",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.SendTurn(context.Background(), tc.params)
			if apperrors.KindOf(err) != apperrors.KindValidation {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}
