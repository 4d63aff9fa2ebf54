package dto

// ChatMessage is one visible transcript entry as submitted by a client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the POST /v1/chat body. The transcript always includes the
// newest user turn; conversation_id is absent on a session's first persisted
// turn.
type ChatRequest struct {
	Messages       []ChatMessage `json:"messages" binding:"required"`
	Persona        string        `json:"persona" binding:"required"`
	ConversationID *string       `json:"conversation_id,omitempty"`
}
