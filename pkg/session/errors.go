package session

import "errors"

var (
	// ErrNotEnabled indicates the session middleware is not installed for the request
	ErrNotEnabled = errors.New("session.not_enabled")

	// ErrInvalidSession indicates the session is malformed
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired indicates the session has expired
	ErrSessionExpired = errors.New("session.expired")

	// ErrSessionNotFound indicates no session was found
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrTokenGeneration indicates token generation failed
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrCorruptSession indicates a stored session could not be decoded
	ErrCorruptSession = errors.New("session.corrupt")

	// ErrNoTransport indicates the manager has no way to carry the token
	ErrNoTransport = errors.New("session.no_transport")
)
