package domain

import "github.com/google/uuid"

// UserID identifies the caller named by a verified bearer token. Links are
// not owned by users; the ID is only attached to logs.
type UserID uuid.UUID

// String returns the canonical UUID form.
func (u UserID) String() string { return uuid.UUID(u).String() }
