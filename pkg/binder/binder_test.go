package binder_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bindkit/pkg/binder"
	"github.com/dmitrymomot/bindkit/pkg/validation"
)

type signupForm struct {
	Email string `form:"email" validate:"required,email"`
	Name  string `form:"name" validate:"required,max=8"`
	Page  int    `query:"page" validate:"min=1"`
}

func TestValidated(t *testing.T) {
	t.Parallel()

	bind := binder.Validated(validation.NewObjectValidator(validation.DefaultProvider()), binder.Form())

	t.Run("valid model", func(t *testing.T) {
		t.Parallel()

		var form signupForm
		form.Page = 1
		req := formRequest(url.Values{"email": {"jane@example.com"}, "name": {"Jane"}})
		require.NoError(t, bind(req, &form))
		assert.Equal(t, "jane@example.com", form.Email)
	})

	t.Run("validation errors keep form field names", func(t *testing.T) {
		t.Parallel()

		var form signupForm
		form.Page = 1
		req := formRequest(url.Values{"email": {"nope"}, "name": {"Jonathan Doe"}})
		err := bind(req, &form)
		require.Error(t, err)

		errs := validation.ExtractValidationErrors(err)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("email"))
		assert.True(t, errs.Has("name"))
	})

	t.Run("binding error skips validation", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		var form signupForm
		err := bind(req, &form)
		require.ErrorIs(t, err, binder.ErrMissingContentType)
		assert.False(t, validation.IsValidationError(err))
	})
}

func TestBind(t *testing.T) {
	t.Parallel()

	validator := validation.NewObjectValidator(validation.DefaultProvider())

	t.Run("combines sources", func(t *testing.T) {
		t.Parallel()

		req := formRequest(url.Values{"email": {"jane@example.com"}, "name": {"Jane"}})
		req.URL.RawQuery = "page=3"

		var form signupForm
		require.NoError(t, binder.Bind(req, &form, binder.Query(), binder.Validated(validator, binder.Form())))
		assert.Equal(t, 3, form.Page)
		assert.Equal(t, "Jane", form.Name)
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()

		req := formRequest(url.Values{"name": {"Jane"}})
		req.URL.RawQuery = "page=x"

		var form signupForm
		err := binder.Bind(req, &form, binder.Query(), binder.Form())
		require.ErrorIs(t, err, binder.ErrFailedToParseQuery)
		assert.Empty(t, form.Name)
	})
}
