package chatclient

import (
	"context"
	"errors"
	"sync"
)

// ErrQuotaExceeded signals that the guest turn quota is exhausted. No request
// is made; the client must prompt for sign-in.
var ErrQuotaExceeded = errors.New("guest message quota exhausted")

// DegradedReply is appended to the transcript when the server cannot be
// reached, keeping the conversation view coherent.
const DegradedReply = "Error connecting to AI."

// Session drives one persona conversation through its three phases: guest,
// signed-in with a fresh thread and signed-in continuing a stored thread.
type Session struct {
	mu sync.Mutex

	api     *APIClient
	tracker *Tracker
	persona string

	signedIn       bool
	conversationID string
	transcript     []TranscriptEntry
}

// NewSession constructs a session for one persona, resuming any persisted
// guest transcript.
func NewSession(api *APIClient, tracker *Tracker, persona string) (*Session, error) {
	transcript, err := tracker.Transcript(persona)
	if err != nil {
		return nil, err
	}
	return &Session{
		api:        api,
		tracker:    tracker,
		persona:    persona,
		transcript: transcript,
	}, nil
}

// Send submits one user turn and returns the assistant reply.
//
// Guests are checked against the quota first: an exhausted quota returns
// ErrQuotaExceeded without any network traffic. A transport failure appends
// DegradedReply to the transcript and returns the underlying error; the
// guest counter only advances on success.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.signedIn {
		allowed, err := s.tracker.Allow(s.persona)
		if err != nil {
			return "", err
		}
		if !allowed {
			return "", ErrQuotaExceeded
		}
	}

	s.transcript = append(s.transcript, TranscriptEntry{Role: "user", Content: text})

	req := ChatRequest{
		Messages: make([]Message, 0, len(s.transcript)),
		Persona:  s.persona,
	}
	for _, entry := range s.transcript {
		req.Messages = append(req.Messages, Message{Role: entry.Role, Content: entry.Content})
	}
	if s.signedIn && s.conversationID != "" {
		id := s.conversationID
		req.ConversationID = &id
	}

	resp, err := s.api.SendChat(ctx, req)
	if err != nil {
		s.transcript = append(s.transcript, TranscriptEntry{Role: "assistant", Content: DegradedReply})
		return DegradedReply, err
	}

	s.transcript = append(s.transcript, TranscriptEntry{Role: "assistant", Content: resp.Reply})

	if s.signedIn {
		// Adopt the server-issued thread ID on the first persisted turn.
		if resp.ConversationID != "" {
			s.conversationID = resp.ConversationID
		}
	} else {
		if err := s.tracker.RecordTurn(s.persona, text, resp.Reply); err != nil {
			return resp.Reply, err
		}
	}

	return resp.Reply, nil
}

// SignIn switches the session to authenticated mode. The guest transcript is
// local-only state and is discarded; the server starts a fresh thread.
func (s *Session) SignIn(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.api.SetToken(token)
	s.signedIn = true
	s.conversationID = ""
	s.transcript = nil
	return s.tracker.Reset(s.persona)
}

// Resume points a signed-in session at a stored conversation and loads its
// transcript.
func (s *Session) Resume(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.signedIn {
		return errors.New("resume requires a signed-in session")
	}

	payload, err := s.api.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}

	transcript := make([]TranscriptEntry, 0, len(payload.Messages))
	for _, m := range payload.Messages {
		transcript = append(transcript, TranscriptEntry{Role: m.Role, Content: m.Content})
	}
	s.conversationID = conversationID
	s.transcript = transcript
	return nil
}

// SignedIn reports the session's auth state.
func (s *Session) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signedIn
}

// ConversationID returns the adopted thread ID, empty while none exists.
func (s *Session) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

// Transcript returns a copy of the visible transcript.
func (s *Session) Transcript() []TranscriptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TranscriptEntry, len(s.transcript))
	copy(out, s.transcript)
	return out
}
