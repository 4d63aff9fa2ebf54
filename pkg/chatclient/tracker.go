package chatclient

import "fmt"

// DefaultFreeLimit is the number of guest turns allowed per persona before
// sign-in is required.
const DefaultFreeLimit = 3

// TranscriptEntry is one visible chat line.
type TranscriptEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// guestState is the persisted per-persona guest record.
type guestState struct {
	Count      int               `json:"count"`
	Transcript []TranscriptEntry `json:"transcript"`
}

// Tracker maintains the per-persona guest transcript and turn counter on top
// of an injected Store. The counter only advances after a completed turn, so
// a failed request never consumes quota.
type Tracker struct {
	store Store
	limit int
}

// NewTracker constructs a tracker. A non-positive limit falls back to
// DefaultFreeLimit.
func NewTracker(store Store, limit int) *Tracker {
	if limit <= 0 {
		limit = DefaultFreeLimit
	}
	return &Tracker{store: store, limit: limit}
}

// Limit returns the configured guest turn quota.
func (t *Tracker) Limit() int {
	return t.limit
}

// Allow reports whether the guest may send another turn for this persona.
func (t *Tracker) Allow(persona string) (bool, error) {
	state, err := t.load(persona)
	if err != nil {
		return false, err
	}
	return state.Count < t.limit, nil
}

// Remaining returns how many guest turns are left for this persona.
func (t *Tracker) Remaining(persona string) (int, error) {
	state, err := t.load(persona)
	if err != nil {
		return 0, err
	}
	left := t.limit - state.Count
	if left < 0 {
		left = 0
	}
	return left, nil
}

// Transcript returns the persisted guest transcript for this persona.
func (t *Tracker) Transcript(persona string) ([]TranscriptEntry, error) {
	state, err := t.load(persona)
	if err != nil {
		return nil, err
	}
	return state.Transcript, nil
}

// RecordTurn appends a completed user/assistant exchange and advances the
// counter. Call it only after a successful reply.
func (t *Tracker) RecordTurn(persona, userText, reply string) error {
	state, err := t.load(persona)
	if err != nil {
		return err
	}
	state.Transcript = append(state.Transcript,
		TranscriptEntry{Role: "user", Content: userText},
		TranscriptEntry{Role: "assistant", Content: reply},
	)
	state.Count++
	return t.save(persona, state)
}

// Reset discards all guest state for this persona.
func (t *Tracker) Reset(persona string) error {
	return t.store.Delete(guestKey(persona))
}

func (t *Tracker) load(persona string) (guestState, error) {
	var state guestState
	if _, err := t.store.Get(guestKey(persona), &state); err != nil {
		return guestState{}, err
	}
	return state, nil
}

func (t *Tracker) save(persona string, state guestState) error {
	return t.store.Set(guestKey(persona), state)
}

func guestKey(persona string) string {
	return fmt.Sprintf("guest:%s", persona)
}
