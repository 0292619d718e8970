package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/slack-taskbot/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestTokenMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "request token matches",
			configured: "secret",
			headers:    map[string]string{RequestTokenHeader: "secret"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "signature fallback matches",
			configured: "secret",
			headers:    map[string]string{SignatureHeader: "secret"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "request token takes precedence",
			configured: "secret",
			headers:    map[string]string{RequestTokenHeader: "wrong", SignatureHeader: "secret"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "mismatch",
			configured: "secret",
			headers:    map[string]string{RequestTokenHeader: "Secret"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "prefix is not enough",
			configured: "secret",
			headers:    map[string]string{RequestTokenHeader: "secret-and-more"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing header",
			configured: "secret",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no configured token",
			configured: "",
			headers:    map[string]string{RequestTokenHeader: ""},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no configured token with presented value",
			configured: "",
			headers:    map[string]string{RequestTokenHeader: "anything"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			h := NewTokenMiddleware(tc.configured).Verify(okHandler(&called))

			req := httptest.NewRequest(http.MethodPost, "/slack/command", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusUnauthorized {
				assert.False(t, called, "downstream handler must not run")
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			} else {
				assert.True(t, called)
			}
		})
	}
}

func TestTokenMiddlewareLogsRejectionAtWarn(t *testing.T) {
	log, buf := logger.NewTestLogger()
	called := false
	h := NewTokenMiddleware("secret").Verify(okHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/slack/command", nil)
	req.Header.Set(RequestTokenHeader, "wrong")
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var rejection map[string]any
	for _, e := range entries {
		if e["msg"] == "API error response" {
			rejection = e
		}
	}
	require.NotNil(t, rejection, "rejection must be logged")
	assert.Equal(t, "WARN", rejection["level"])
	assert.Equal(t, float64(http.StatusUnauthorized), rejection["status_code"])
	assert.Contains(t, rejection["error"], "command request rejected")
	assert.NotContains(t, buf.String(), "secret")
}
