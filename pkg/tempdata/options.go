package tempdata

import "log/slog"

// Option configures a SessionProvider.
type Option func(*SessionProvider)

// WithKey sets the session key temp data is stored under.
func WithKey(key string) Option {
	return func(p *SessionProvider) {
		if key != "" {
			p.key = key
		}
	}
}

// WithLogger sets the logger for decode failures and saves.
func WithLogger(l *slog.Logger) Option {
	return func(p *SessionProvider) {
		if l != nil {
			p.logger = l
		}
	}
}
