package binder

import (
	"context"
	"mime"
	"net/http"
)

// Func binds request data into v, which must be a pointer to a struct.
type Func func(r *http.Request, v any) error

// Validator checks a bound model. *validation.ObjectValidator satisfies it.
type Validator interface {
	Validate(ctx context.Context, model any) error
}

// Bind runs binders in order, stopping at the first error.
func Bind(r *http.Request, v any, binders ...Func) error {
	for _, b := range binders {
		if err := b(r, v); err != nil {
			return err
		}
	}
	return nil
}

// Validated wraps b so the model is validated after a successful bind.
// Validation failures are returned as they come from the validator, so
// validation.ExtractValidationErrors works on the result.
func Validated(v Validator, b Func) Func {
	return func(r *http.Request, model any) error {
		if err := b(r, model); err != nil {
			return err
		}
		return v.Validate(r.Context(), model)
	}
}

// mediaType returns the request media type without parameters.
func mediaType(r *http.Request) (string, map[string]string, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", nil, ErrMissingContentType
	}
	mt, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", nil, err
	}
	return mt, params, nil
}
