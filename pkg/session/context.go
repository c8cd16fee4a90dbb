package session

import (
	"context"
	"net/http"
	"sync"
)

// Feature is the per-request session access installed by Manager.Middleware.
// The session is loaded on first use. A session created during the request
// is only persisted once a value is stored in it.
type Feature struct {
	manager *Manager
	w       http.ResponseWriter
	r       *http.Request

	mu      sync.Mutex
	loaded  bool
	created bool
	session *Session
	err     error
}

// NewFeature creates session access for a single request.
func NewFeature(m *Manager, w http.ResponseWriter, r *http.Request) *Feature {
	return &Feature{manager: m, w: w, r: r}
}

// Existing returns the session the request refers to without creating one.
// It returns ErrSessionNotFound when there is none.
func (f *Feature) Existing() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return nil, err
	}
	if f.session == nil {
		return nil, ErrSessionNotFound
	}
	return f.session, nil
}

// Session returns the request's session, creating one if needed.
func (f *Feature) Session() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return nil, err
	}
	if f.session == nil {
		s, err := f.manager.Create()
		if err != nil {
			return nil, err
		}
		f.session = s
		f.created = true
	}
	return f.session, nil
}

// Destroy removes the session from the store and clears the client token.
func (f *Feature) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.loaded = true
	f.session = nil
	f.created = false
	f.err = nil
	return f.manager.Destroy(f.r.Context(), f.w, f.r)
}

// Commit persists the session if it needs it. Safe to call more than once.
func (f *Feature) Commit(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session == nil {
		return nil
	}
	if f.created && len(f.session.Values) == 0 {
		return nil
	}
	if err := f.manager.Commit(ctx, f.w, f.session); err != nil {
		return err
	}
	f.created = false
	return nil
}

// load must be called with f.mu held.
func (f *Feature) load() error {
	if f.loaded {
		return f.err
	}
	f.loaded = true

	s, err := f.manager.Load(f.r.Context(), f.r)
	switch {
	case err == nil:
		f.session = s
	case isMissing(err):
	default:
		f.err = err
	}
	return f.err
}

type featureContextKey struct{}

// WithFeature adds session access to the context
func WithFeature(ctx context.Context, f *Feature) context.Context {
	return context.WithValue(ctx, featureContextKey{}, f)
}

// FeatureFromContext retrieves session access from the context
func FeatureFromContext(ctx context.Context) (*Feature, bool) {
	f, ok := ctx.Value(featureContextKey{}).(*Feature)
	return f, ok && f != nil
}

// FromContext returns the request's session, creating one if needed.
// It returns ErrNotEnabled when the session middleware is not installed.
func FromContext(ctx context.Context) (*Session, error) {
	f, ok := FeatureFromContext(ctx)
	if !ok {
		return nil, ErrNotEnabled
	}
	return f.Session()
}
