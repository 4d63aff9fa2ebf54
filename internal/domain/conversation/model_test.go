package conversation

import "testing"

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		name     string
		messages []Message
		want     string
	}{
		{
			name:     "short first user message",
			messages: []Message{{Role: RoleUser, Content: "how do I learn go"}},
			want:     "how do I learn go...",
		},
		{
			name: "long message truncated at thirty runes",
			messages: []Message{
				{Role: RoleUser, Content: "this is a very long opening question that keeps going"},
			},
			want: "this is a very long opening qu...",
		},
		{
			name: "skips leading assistant message",
			messages: []Message{
				{Role: RoleAssistant, Content: "greeting from the bot"},
				{Role: RoleUser, Content: "actual question"},
			},
			want: "actual question...",
		},
		{
			name: "skips blank user message",
			messages: []Message{
				{Role: RoleUser, Content: "   "},
				{Role: RoleUser, Content: "real one"},
			},
			want: "real one...",
		},
		{
			name:     "no user message falls back",
			messages: []Message{{Role: RoleAssistant, Content: "hello"}},
			want:     "New conversation",
		},
		{
			name: "multibyte runes counted not bytes",
			messages: []Message{
				{Role: RoleUser, Content: "čćžšđ čćžšđ čćžšđ čćžšđ čćžšđ čćžšđ"},
			},
			want: "čćžšđ čćžšđ čćžšđ čćžšđ čćžšđ ...",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveTitle(tc.messages)
			if got != tc.want {
				t.Errorf("DeriveTitle() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAssistant.Valid() {
		t.Error("user and assistant are the accepted roles")
	}
	if Role("system").Valid() {
		t.Error("system role must be rejected by the store")
	}
	if Role("").Valid() {
		t.Error("empty role must be rejected")
	}
}
