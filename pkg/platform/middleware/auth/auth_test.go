package auth

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nameorigin/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
	calls  []string
}

func (s *stubValidator) ValidateToken(token string) (*JWTClaims, error) {
	s.calls = append(s.calls, token)
	return s.claims, s.err
}

func newProtected(v JWTValidator) (http.Handler, *string) {
	var seenUser string
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := RequireAuth(v, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = requestcontext.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seenUser
}

func TestRequireAuth(t *testing.T) {
	t.Run("missing header is rejected without calling validator", func(t *testing.T) {
		v := &stubValidator{}
		h, _ := newProtected(v)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/names/?name=maria", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, v.calls)
		assert.JSONEq(t, `{"error":"unauthorized","error_description":"Missing or invalid Authorization header"}`, rec.Body.String())
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		v := &stubValidator{}
		h, _ := newProtected(v)

		req := httptest.NewRequest(http.MethodGet, "/names/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, v.calls)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		v := &stubValidator{err: errors.New("signature is invalid")}
		h, _ := newProtected(v)

		req := httptest.NewRequest(http.MethodGet, "/names/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, []string{"not-a-jwt"}, v.calls)
	})

	t.Run("valid token stores principal", func(t *testing.T) {
		v := &stubValidator{claims: &JWTClaims{UserID: "7", JTI: "abc"}}
		h, seen := newProtected(v)

		req := httptest.NewRequest(http.MethodGet, "/names/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "7", *seen)
	})
}
