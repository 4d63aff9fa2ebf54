package conversation

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Role indicates who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one the store accepts.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Conversation is a durable, identity-owned chat thread.
type Conversation struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	UserID    uint      `json:"-"`
	Persona   string    `json:"persona"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is the sidebar listing shape.
type Summary struct {
	PublicID string `json:"id"`
	Title    string `json:"title"`
	Persona  string `json:"persona"`
}

// Message is one immutable entry in a conversation. Display order is
// creation time ascending.
type Message struct {
	ID             uint      `json:"-"`
	ConversationID uint      `json:"-"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// titleRuneLimit bounds the derived conversation title.
const titleRuneLimit = 30

// DeriveTitle builds the one-time conversation title from the first user
// message of the seeding transcript. It is never recomputed. The ellipsis
// is appended unconditionally, even when the message is shorter than the
// rune limit; stored titles rely on that shape.
func DeriveTitle(messages []Message) string {
	for _, m := range messages {
		if m.Role != RoleUser {
			continue
		}
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}
		if utf8.RuneCountInString(text) <= titleRuneLimit {
			return text + "..."
		}
		runes := []rune(text)
		return string(runes[:titleRuneLimit]) + "..."
	}
	return "New conversation"
}
