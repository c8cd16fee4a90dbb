package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/bindkit/pkg/binder"
	"github.com/dmitrymomot/bindkit/pkg/httpserver"
	"github.com/dmitrymomot/bindkit/pkg/logger"
	"github.com/dmitrymomot/bindkit/pkg/session"
	"github.com/dmitrymomot/bindkit/pkg/tempdata"
	"github.com/dmitrymomot/bindkit/pkg/validation"
)

const (
	flashKey   = "flash"
	signupsKey = "signups"
)

type signupForm struct {
	Email string `form:"email" json:"email" validate:"required,email"`
	Name  string `form:"name" json:"name" validate:"required,min=2,max=64"`
	Plan  string `form:"plan" json:"plan" validate:"required,oneof=free pro team"`
}

type app struct {
	log      *slog.Logger
	bindForm binder.Func
	bindJSON binder.Func
}

func newRouter(log *slog.Logger, sessions *session.Manager, provider tempdata.Provider, readiness ...func(context.Context) error) http.Handler {
	validator := validation.NewObjectValidator(validation.DefaultProvider())
	a := &app{
		log:      log,
		bindForm: binder.Validated(validator, binder.Form()),
		bindJSON: binder.Validated(validator, binder.JSON()),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, readiness...))
	r.Post("/api/signups", a.apiSignup)

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)
		r.Use(tempdata.Middleware(provider, tempdata.WithMiddlewareLogger(log)))

		r.Get("/", a.home)
		r.Post("/signup", a.signup)
	})

	return r
}

func (a *app) home(w http.ResponseWriter, r *http.Request) {
	td, _ := tempdata.FromContext(r.Context())

	var page homePage
	if v, ok := td.Get(flashKey); ok {
		page.Flash, _ = v.(string)
	}
	// The signup counter survives every request until a new signup replaces it.
	if v, ok := td.Peek(signupsKey); ok {
		page.Signups, _ = v.(int)
	}

	a.render(w, r, http.StatusOK, homeView(page))
}

func (a *app) signup(w http.ResponseWriter, r *http.Request) {
	var form signupForm
	if err := a.bindForm(r, &form); err != nil {
		errs := validation.ExtractValidationErrors(err)
		if errs == nil {
			a.log.WarnContext(r.Context(), "failed to bind signup form", logger.Handler("signup"), logger.Error(err))
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		a.render(w, r, http.StatusUnprocessableEntity, homeView(homePage{Form: form, Errors: errs}))
		return
	}

	td, _ := tempdata.FromContext(r.Context())
	signups := 0
	if v, ok := td.Peek(signupsKey); ok {
		signups, _ = v.(int)
	}
	td.Set(signupsKey, signups+1)
	td.Set(flashKey, fmt.Sprintf("Welcome, %s! You are on the %s plan.", form.Name, form.Plan))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *app) apiSignup(w http.ResponseWriter, r *http.Request) {
	var form signupForm
	if err := a.bindJSON(r, &form); err != nil {
		status := http.StatusBadRequest
		body := map[string]any{"error": err.Error()}
		if errs := validation.ExtractValidationErrors(err); errs != nil {
			status = http.StatusUnprocessableEntity
			fields := make(map[string][]string, len(errs))
			for _, field := range errs.Fields() {
				fields[field] = errs.Get(field)
			}
			body = map[string]any{"error": "validation failed", "fields": fields}
		}
		writeJSON(w, status, body)
		return
	}
	writeJSON(w, http.StatusCreated, form)
}

func (a *app) render(w http.ResponseWriter, r *http.Request, status int, view templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := view.Render(r.Context(), w); err != nil {
		a.log.ErrorContext(r.Context(), "failed to render page", logger.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
