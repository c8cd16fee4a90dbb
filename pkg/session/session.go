package session

import (
	"bytes"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Session is a per-user, server-side store of byte values keyed by string.
// A Session is owned by a single request at a time and is not safe for
// concurrent use; the Store hands out copies.
type Session struct {
	ID             uuid.UUID         `json:"id"`
	Token          string            `json:"token"`
	Values         map[string][]byte `json:"values,omitempty"`
	ExpiresAt      time.Time         `json:"expires_at"`
	LastActivityAt time.Time         `json:"last_activity_at"`
	CreatedAt      time.Time         `json:"created_at"`

	modified bool
}

// NewSession creates a session that expires after ttl.
// New sessions count as modified so they get persisted.
func NewSession(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		Values:         make(map[string][]byte),
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
		modified:       true,
	}
}

// IsExpired returns true if the session has expired
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Get returns the value stored under key. The returned slice must not be modified.
func (s *Session) Get(key string) ([]byte, bool) {
	if s == nil || s.Values == nil {
		return nil, false
	}
	val, ok := s.Values[key]
	return val, ok
}

// Set stores a copy of value under key and marks the session modified.
func (s *Session) Set(key string, value []byte) {
	if s == nil {
		return
	}
	if s.Values == nil {
		s.Values = make(map[string][]byte)
	}
	s.Values[key] = bytes.Clone(value)
	s.modified = true
}

// Remove deletes key. The session is only marked modified if the key existed.
func (s *Session) Remove(key string) {
	if s == nil || s.Values == nil {
		return
	}
	if _, ok := s.Values[key]; !ok {
		return
	}
	delete(s.Values, key)
	s.modified = true
}

// Keys returns the stored keys in sorted order.
func (s *Session) Keys() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.Values))
}

// Clear removes all values from the session.
func (s *Session) Clear() {
	if s == nil || len(s.Values) == 0 {
		return
	}
	s.Values = make(map[string][]byte)
	s.modified = true
}

// IsModified reports whether the session changed since it was loaded or saved.
func (s *Session) IsModified() bool {
	return s != nil && s.modified
}

// Touch updates the last activity time
func (s *Session) Touch() {
	if s == nil {
		return
	}
	s.LastActivityAt = time.Now()
}

// clone returns a deep copy with the modified flag reset.
func (s *Session) clone() *Session {
	c := *s
	c.modified = false
	if s.Values != nil {
		c.Values = make(map[string][]byte, len(s.Values))
		for k, v := range s.Values {
			c.Values[k] = bytes.Clone(v)
		}
	}
	return &c
}
