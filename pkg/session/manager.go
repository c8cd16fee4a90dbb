package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/bindkit/pkg/logger"
)

// Manager handles the session life-cycle: token lookup, creation,
// sliding expiry and persistence.
type Manager struct {
	store     Store
	transport Transport
	config    Config
	logger    *slog.Logger
	ownStore  bool
}

// New creates a new session manager with the given options.
// Without WithStore it uses a MemoryStore, without WithTransport a
// CookieTransport named after Config.CookieName.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		logger: logger.Discard(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
		m.ownStore = true
	}

	if m.transport == nil && m.config.CookieName != "" {
		m.transport = NewCookieTransport(m.config.CookieName, WithSecureCookie(m.config.SecureCookies))
	}

	return m
}

// Load returns the session referenced by the request token.
// It returns ErrSessionNotFound when the request carries no token.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	if m.transport == nil {
		return nil, ErrNoTransport
	}

	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	return m.store.Get(ctx, token)
}

// Create returns a new, not yet persisted session with a fresh token.
func (m *Manager) Create() (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return NewSession(token, m.config.expiry(now, now).Sub(now)), nil
}

// Commit persists a modified session and sends its token, sliding the
// expiry. Unmodified sessions are only refreshed once ActivityUpdateThreshold
// has passed since the last activity.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, session *Session) error {
	if session == nil {
		return nil
	}
	if m.transport == nil {
		return ErrNoTransport
	}
	if !session.IsModified() && time.Since(session.LastActivityAt) < m.config.ActivityUpdateThreshold {
		return nil
	}

	now := time.Now()
	session.ExpiresAt = m.config.expiry(session.CreatedAt, now)
	session.Touch()

	if err := m.store.Save(ctx, session); err != nil {
		return err
	}
	session.modified = false

	return m.transport.SetToken(w, session.Token, time.Until(session.ExpiresAt))
}

// Destroy deletes the session referenced by the request and clears the token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if m.transport == nil {
		return ErrNoTransport
	}

	token, err := m.transport.GetToken(r)
	if err == nil && token != "" {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}

	return m.transport.ClearToken(w)
}

// Close releases the default memory store. Stores passed with WithStore are
// left to their owner.
func (m *Manager) Close() error {
	if !m.ownStore {
		return nil
	}
	if closer, ok := m.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// isMissing reports errors that mean "start over with a new session".
func isMissing(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrCorruptSession)
}

// generateToken creates a cryptographically secure token
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
