package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/slack-taskbot/internal/api/shared"
)

// Headers carrying the shared verification secret, in lookup order.
const (
	RequestTokenHeader = "X-Slack-Request-Token"
	SignatureHeader    = "X-Slack-Signature"
)

// UnauthorizedMessage is the error body for rejected requests.
const UnauthorizedMessage = "Unauthorized"

// ErrRejectedToken is logged for every request that fails the token check.
var ErrRejectedToken = errors.New("command request rejected")

// TokenMiddleware rejects requests whose token header does not equal the
// configured verification token. An empty configured token rejects every
// request.
type TokenMiddleware struct {
	expected []byte
}

// NewTokenMiddleware creates a TokenMiddleware for the given secret.
func NewTokenMiddleware(verificationToken string) *TokenMiddleware {
	return &TokenMiddleware{expected: []byte(verificationToken)}
}

// Verify wraps next with the token check.
func (m *TokenMiddleware) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reason, ok := m.check(r); !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, UnauthorizedMessage,
				fmt.Errorf("%w: %s from %s", ErrRejectedToken, reason, r.RemoteAddr),
				shared.WithElevatedLogLevel())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *TokenMiddleware) check(r *http.Request) (string, bool) {
	if len(m.expected) == 0 {
		return "verification token not configured", false
	}

	presented := r.Header.Get(RequestTokenHeader)
	if presented == "" {
		presented = r.Header.Get(SignatureHeader)
	}
	if presented == "" {
		return "missing token header", false
	}

	if subtle.ConstantTimeCompare([]byte(presented), m.expected) != 1 {
		return "token mismatch", false
	}
	return "", true
}
