package user

import "time"

// User maps an external auth provider identity to an internal owner row.
// Created lazily on the first authenticated turn and never refreshed after.
type User struct {
	ID         uint      `json:"-"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
}

// Identity is the resolved external-provider identity for one request.
// Absence of an Identity means the caller is a guest.
type Identity struct {
	Subject string
	Email   string
}
