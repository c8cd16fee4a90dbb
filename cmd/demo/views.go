package main

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/bindkit/pkg/validation"
)

type homePage struct {
	Flash   string
	Signups int
	Form    signupForm
	Errors  validation.ValidationErrors
}

func homeView(p homePage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html><html><body><h1>Sign up</h1>`); err != nil {
			return err
		}
		if p.Flash != "" {
			if _, err := fmt.Fprintf(w, `<p class="flash">%s</p>`, templ.EscapeString(p.Flash)); err != nil {
				return err
			}
		}
		if p.Signups > 0 {
			if _, err := fmt.Fprintf(w, `<p class="signups">%d signups so far</p>`, p.Signups); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<form method="post" action="/signup">`); err != nil {
			return err
		}
		for _, f := range []struct{ name, value string }{
			{"email", p.Form.Email},
			{"name", p.Form.Name},
			{"plan", p.Form.Plan},
		} {
			if err := fieldView(f.name, f.value, p.Errors.Get(f.name)).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<button type="submit">Sign up</button></form></body></html>`)
		return err
	})
}

func fieldView(name, value string, errs []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<label>%[1]s <input name="%[1]s" value="%[2]s"></label>`,
			templ.EscapeString(name), templ.EscapeString(value)); err != nil {
			return err
		}
		for _, msg := range errs {
			if _, err := fmt.Fprintf(w, `<span class="error" data-field="%s">%s</span>`,
				templ.EscapeString(name), templ.EscapeString(msg)); err != nil {
				return err
			}
		}
		return nil
	})
}
