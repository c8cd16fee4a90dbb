package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bindkit/pkg/logger"
	"github.com/dmitrymomot/bindkit/pkg/session"
	"github.com/dmitrymomot/bindkit/pkg/tempdata"
)

func newTestServer(t *testing.T, readiness ...func(context.Context) error) (*httptest.Server, *http.Client) {
	t.Helper()

	sessions := session.New(session.WithStore(session.NewMemoryStore(0)))
	t.Cleanup(func() { _ = sessions.Close() })

	srv := httptest.NewServer(newRouter(logger.Discard(), sessions, tempdata.NewSessionProvider(), readiness...))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestSignupFlow(t *testing.T) {
	t.Parallel()

	srv, client := newTestServer(t)

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, `class="flash"`)
	assert.Empty(t, resp.Cookies(), "visiting the form must not start a session")

	resp, err = client.PostForm(srv.URL+"/signup", url.Values{
		"email": {"jane@example.com"},
		"name":  {"Jane"},
		"plan":  {"pro"},
	})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, "Welcome, Jane! You are on the pro plan.")
	assert.Contains(t, body, "1 signups so far")

	resp, err = client.Get(srv.URL + "/")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.NotContains(t, body, "Welcome, Jane!", "flash is shown once")
	assert.Contains(t, body, "1 signups so far", "peeked values survive")
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()

	srv, client := newTestServer(t)

	resp, err := client.PostForm(srv.URL+"/signup", url.Values{
		"email": {"not-an-email"},
		"name":  {"Jane"},
		"plan":  {"enterprise"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, `data-field="email"`)
	assert.Contains(t, body, `data-field="plan"`)
	assert.NotContains(t, body, `data-field="name"`)
	assert.Contains(t, body, `value="Jane"`)
}

func TestSignupBadRequest(t *testing.T) {
	t.Parallel()

	srv, client := newTestServer(t)

	resp, err := client.Post(srv.URL+"/signup", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	_ = readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPISignup(t *testing.T) {
	t.Parallel()

	srv, client := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantFields []string
	}{
		{"valid", `{"email":"jane@example.com","name":"Jane","plan":"team"}`, http.StatusCreated, nil},
		{"invalid fields", `{"email":"jane","name":"J","plan":"team"}`, http.StatusUnprocessableEntity, []string{"email", "name"}},
		{"unknown field", `{"email":"jane@example.com","admin":true}`, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := client.Post(srv.URL+"/api/signups", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var out struct {
				Fields map[string][]string `json:"fields"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			for _, field := range tt.wantFields {
				assert.NotEmpty(t, out.Fields[field], field)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("live", func(t *testing.T) {
		t.Parallel()

		srv, client := newTestServer(t)
		resp, err := client.Get(srv.URL + "/health/live")
		require.NoError(t, err)
		assert.Equal(t, "ALIVE", readBody(t, resp))
	})

	t.Run("not ready", func(t *testing.T) {
		t.Parallel()

		srv, client := newTestServer(t, func(context.Context) error { return errors.New("redis down") })
		resp, err := client.Get(srv.URL + "/health/ready")
		require.NoError(t, err)
		assert.Equal(t, "NOT_READY", readBody(t, resp))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
