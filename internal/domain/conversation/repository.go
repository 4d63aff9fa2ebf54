package conversation

import "context"

// ListPageSize caps the sidebar listing.
const ListPageSize = 20

// Repository exposes the store operations the turn orchestrator and the
// conversation endpoints depend on.
type Repository interface {
	// CreateWithMessages seeds a new conversation together with its initial
	// message set in one transaction. The conversation's ID fields are
	// populated on return.
	CreateWithMessages(ctx context.Context, conv *Conversation, messages []Message) error

	// ListByUser returns summaries ordered by last update descending, capped
	// at ListPageSize.
	ListByUser(ctx context.Context, userID uint) ([]Summary, error)

	// GetByPublicID fetches a conversation with its messages ordered oldest
	// first. The data layer applies no ownership filter; identity
	// enforcement happens at the access gate.
	GetByPublicID(ctx context.Context, publicID string) (*Conversation, error)

	// FindOwned fetches the conversation only when it belongs to userID;
	// absent and not-owned both yield a not-found-class error.
	FindOwned(ctx context.Context, publicID string, userID uint) (*Conversation, error)

	// AppendTurn writes the user message and the assistant reply and bumps
	// the conversation's updated-at, all inside one transaction.
	AppendTurn(ctx context.Context, conversationID uint, userMsg, assistantMsg Message) error

	// DeleteOwned removes the conversation and, by cascade, its messages
	// when it belongs to userID; otherwise a not-found-class error.
	DeleteOwned(ctx context.Context, publicID string, userID uint) error
}
