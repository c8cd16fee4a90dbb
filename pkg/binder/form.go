package binder

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data
// values into fields tagged `form:"name"`. Fields tagged `form:"-"` and
// untagged fields are skipped. Supported field types are strings, numbers,
// bools, types implementing encoding.TextUnmarshaler, pointers to those for
// optional fields, and slices for repeated fields.
//
//	type ProfileForm struct {
//		Name  string   `form:"name" validate:"required,max=64"`
//		Email string   `form:"email" validate:"required,email"`
//		Tags  []string `form:"tags"`
//		Age   *int     `form:"age" validate:"min=13"`
//	}
func Form() Func {
	return func(r *http.Request, v any) error {
		mt, params, err := mediaType(r)
		if err != nil {
			return fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", err)
		}

		var values map[string][]string
		switch {
		case mt == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm

		case mt == "multipart/form-data":
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mt)
		}

		return bindValues(v, "form", values, ErrInvalidForm)
	}
}

// Query binds URL query parameters into fields tagged `query:"name"`.
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}

// tagName returns the parameter name from a struct tag value such as "name,omitempty".
func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return strings.TrimSpace(name)
}
