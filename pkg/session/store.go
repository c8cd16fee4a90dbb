package session

import "context"

// Store defines the interface for session persistence.
// Implementations must return copies so callers can mutate sessions freely.
type Store interface {
	// Get retrieves a session by token.
	// Returns ErrSessionNotFound or ErrSessionExpired when there is nothing usable.
	Get(ctx context.Context, token string) (*Session, error)

	// Save creates or replaces a session.
	Save(ctx context.Context, session *Session) error

	// Delete removes a session by token
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all expired sessions
	DeleteExpired(ctx context.Context) error
}
