package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bindkit/pkg/binder"
)

type createUser struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Tags  []string `json:"tags"`
}

func jsonRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()

		var u createUser
		req := jsonRequest(`{"name":"Jane","email":"jane@example.com","tags":["a"]}`, "application/json; charset=utf-8")
		require.NoError(t, binder.JSON()(req, &u))
		assert.Equal(t, createUser{Name: "Jane", Email: "jane@example.com", Tags: []string{"a"}}, u)
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		wantErr     error
	}{
		{"unknown field", `{"name":"Jane","admin":true}`, "application/json", binder.ErrFailedToParseJSON},
		{"trailing data", `{"name":"Jane"}{"name":"John"}`, "application/json", binder.ErrFailedToParseJSON},
		{"empty body", ``, "application/json", binder.ErrFailedToParseJSON},
		{"malformed", `{"name":`, "application/json", binder.ErrFailedToParseJSON},
		{"too large", `{"name":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, "application/json", binder.ErrFailedToParseJSON},
		{"wrong media type", `{}`, "text/plain", binder.ErrUnsupportedMediaType},
		{"missing content type", `{}`, "", binder.ErrMissingContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var u createUser
			err := binder.JSON()(jsonRequest(tt.body, tt.contentType), &u)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
