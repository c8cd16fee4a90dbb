package session

import (
	"net/http"

	"github.com/dmitrymomot/bindkit/pkg/hookwriter"
	"github.com/dmitrymomot/bindkit/pkg/logger"
)

// Middleware installs a Feature in the request context. The session is
// committed right before the response starts, so the token can still be set,
// and once more after the handler returns.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f := &Feature{manager: m, r: r}

		hw := hookwriter.New(w, func() {
			if err := f.Commit(ctx); err != nil {
				m.logger.ErrorContext(ctx, "failed to commit session", logger.Component("session"), logger.Error(err))
			}
		})
		f.w = hw

		r = r.WithContext(WithFeature(ctx, f))
		f.r = r

		next.ServeHTTP(hw, r)

		hw.Fire()
		if err := f.Commit(ctx); err != nil {
			m.logger.ErrorContext(ctx, "failed to commit session", logger.Component("session"), logger.Error(err))
		}
	})
}
