package tempdata

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/bindkit/pkg/session"
)

// requestContext adapts the session middleware's per-request Feature.
type requestContext struct {
	feature *session.Feature
}

// RequestContext returns the Context for r. The session feature is enabled
// when r went through session.Manager.Middleware.
func RequestContext(r *http.Request) Context {
	f, _ := session.FeatureFromContext(r.Context())
	return requestContext{feature: f}
}

func (c requestContext) SessionEnabled() bool {
	return c.feature != nil
}

func (c requestContext) Session() (Session, error) {
	if c.feature == nil {
		return nil, session.ErrNotEnabled
	}
	s, err := c.feature.Session()
	if err != nil {
		return nil, err
	}
	return s, nil
}

type dictionaryContextKey struct{}

// WithDictionary adds d to the context.
func WithDictionary(ctx context.Context, d *Dictionary) context.Context {
	return context.WithValue(ctx, dictionaryContextKey{}, d)
}

// FromContext returns the request's Dictionary installed by Middleware.
func FromContext(ctx context.Context) (*Dictionary, bool) {
	d, ok := ctx.Value(dictionaryContextKey{}).(*Dictionary)
	return d, ok && d != nil
}
