// Package session holds the server-side session state that carries a
// logged-in user's identity between requests.  The browser only holds a
// signed cookie with the session ID; everything else lives in the Store.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session ID has no live record, either
// because it never existed or because its TTL elapsed.
var ErrNotFound = errors.New("session not found")

// Identity is the authenticated principal attached to a session.
type Identity struct {
	UserID uint64 `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Store persists sessions for a fixed TTL.  Create returns the new session
// ID; Get resolves an ID back to its identity; Destroy removes a record and
// is a no-op for unknown IDs.
type Store interface {
	Create(ctx context.Context, id Identity, ttl time.Duration) (string, error)
	Get(ctx context.Context, sessionID string) (Identity, error)
	Destroy(ctx context.Context, sessionID string) error
}
