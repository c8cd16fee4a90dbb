package session

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithStore sets a custom session store
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithIdleTimeout sets the idle timeout for sessions
func WithIdleTimeout(idle time.Duration) Option {
	return func(m *Manager) {
		m.config.IdleTimeout = idle
	}
}

// WithMaxLifetime sets the maximum lifetime for sessions
func WithMaxLifetime(max time.Duration) Option {
	return func(m *Manager) {
		m.config.MaxLifetime = max
	}
}

// WithLogger sets the logger used for persistence failures the request cannot report.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}
