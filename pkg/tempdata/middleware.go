package tempdata

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/bindkit/pkg/hookwriter"
	"github.com/dmitrymomot/bindkit/pkg/logger"
)

// ErrorHandler answers a request whose temp data could not be saved.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type middlewareConfig struct {
	logger       *slog.Logger
	errorHandler ErrorHandler
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

// WithMiddlewareLogger sets the logger for load and save failures.
func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithErrorHandler replaces the default 500 response sent when saving fails
// before anything was written.
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Middleware loads the request's Dictionary into the context and saves it
// before the response starts, or after the handler when it wrote nothing.
// It must run inside session.Manager.Middleware so the session is committed
// after temp data is saved.
func Middleware(provider Provider, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		logger:       logger.Discard(),
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			tctx := RequestContext(r)

			dict, err := Load(tctx, provider)
			if err != nil {
				cfg.logger.WarnContext(ctx, "failed to load temp data", logger.Component("tempdata"), logger.Error(err))
			}

			var saveErr error
			hw := hookwriter.New(w, func() {
				saveErr = dict.Save(tctx)
			})

			next.ServeHTTP(hw, r.WithContext(WithDictionary(ctx, dict)))

			written := hw.Written()
			hw.Fire()
			if saveErr == nil {
				return
			}

			cfg.logger.ErrorContext(ctx, "failed to save temp data", logger.Component("tempdata"), logger.Error(saveErr))
			if !written {
				cfg.errorHandler(hw, r, saveErr)
			}
		})
	}
}
