package tempdata

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/bindkit/pkg/logger"
)

const (
	// SessionKey is the default session key holding temp data.
	SessionKey = "__tempdata"

	// ProviderName identifies SessionProvider in serialization errors.
	ProviderName = "tempdata.SessionProvider"
)

// Session is the byte-oriented store temp data is kept in.
type Session interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Remove(key string)
}

// Context gives access to the request's session.
type Context interface {
	// Session returns the request's session. It fails when the session
	// feature is not enabled or the session cannot be obtained.
	Session() (Session, error)
	// SessionEnabled reports whether the session feature is installed.
	SessionEnabled() bool
}

// Provider loads and saves temp data for a request.
type Provider interface {
	Load(ctx Context) (map[string]any, error)
	Save(ctx Context, values map[string]any) error
}

// SessionProvider keeps temp data in the session under a single key.
// It holds no per-request state and is safe for concurrent use.
type SessionProvider struct {
	key    string
	logger *slog.Logger
}

// NewSessionProvider creates a provider storing temp data under SessionKey.
func NewSessionProvider(opts ...Option) *SessionProvider {
	p := &SessionProvider{
		key:    SessionKey,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the session key temp data is stored under.
func (p *SessionProvider) Key() string {
	return p.key
}

// Load returns the temp data stored in the session. The map is never nil.
// A missing or unavailable session yields an empty map, and so does a stored
// payload that cannot be decoded; the latter is logged as ErrCorruptPayload.
// SessionProvider never returns an error from Load.
func (p *SessionProvider) Load(ctx Context) (map[string]any, error) {
	values := make(map[string]any)
	if ctx == nil {
		return values, nil
	}

	sess, err := ctx.Session()
	if err != nil || sess == nil {
		return values, nil
	}

	data, ok := sess.Get(p.key)
	if !ok || len(data) == 0 {
		return values, nil
	}

	decoded, err := decode(data)
	if err != nil {
		p.logger.Warn("discarding unreadable temp data",
			logger.Component("tempdata"),
			slog.String("key", p.key),
			logger.Error(err),
		)
		return values, nil
	}
	return decoded, nil
}

// Save stores values in the session. Values are checked with
// EnsureSerializable first; a rejected value leaves the session untouched.
// Empty values clear previously stored temp data. Non-empty values require
// a session.
func (p *SessionProvider) Save(ctx Context, values map[string]any) error {
	if err := ensureSerializable(values, ProviderName); err != nil {
		return err
	}

	if len(values) == 0 {
		if ctx == nil || !ctx.SessionEnabled() {
			return nil
		}
		sess, err := ctx.Session()
		if err != nil || sess == nil {
			return nil
		}
		sess.Remove(p.key)
		return nil
	}

	if ctx == nil || !ctx.SessionEnabled() {
		return ErrSessionRequired
	}
	sess, err := ctx.Session()
	if err != nil {
		return errors.Join(ErrSessionRequired, err)
	}
	if sess == nil {
		return ErrSessionRequired
	}

	data, err := encode(values)
	if err != nil {
		return err
	}
	sess.Set(p.key, data)

	p.logger.Debug("temp data saved",
		logger.Component("tempdata"),
		slog.String("key", p.key),
		slog.Int("entries", len(values)),
	)
	return nil
}
