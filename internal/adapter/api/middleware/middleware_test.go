package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"rivalioo/internal/infrastructure/ratelimit"
)

type stubVerifier map[string]string

func (s stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if uid, ok := s[token]; ok {
		return uid, nil
	}
	return "", stderrors.New("invalid")
}

func run(mw echo.MiddlewareFunc, header map[string]string) (*httptest.ResponseRecorder, string) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var uid string
	h := mw(func(c echo.Context) error {
		uid, _ = c.Get("uid").(string)
		return c.NoContent(http.StatusNoContent)
	})
	_ = h(c)
	return rec, uid
}

func TestAuthenticate(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{"tok": "user-1"})

	rec, uid := run(m.Authenticate, map[string]string{"Authorization": "Bearer tok"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-1", uid)

	rec, _ = run(m.Authenticate, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = run(m.Authenticate, map[string]string{"Authorization": "Basic tok"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = run(m.Authenticate, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateWithoutVerifier(t *testing.T) {
	rec, _ := run(NewAuthMiddleware(nil).Authenticate, map[string]string{"Authorization": "Bearer tok"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{"tok": "user-1"})

	rec, uid := run(m.OptionalAuth, map[string]string{"Authorization": "Bearer tok"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-1", uid)

	rec, uid = run(m.OptionalAuth, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, uid)

	rec, uid = run(NewAuthMiddleware(nil).OptionalAuth, map[string]string{"Authorization": "Bearer tok"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, uid)
}

func TestRateLimitPerCaller(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(ratelimit.Policy{Burst: 1, Every: time.Minute}, nil)
	mw := RateLimit(limiter, "test")

	rec, _ := run(mw, map[string]string{CartSessionHeader: "a"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = run(mw, map[string]string{CartSessionHeader: "a"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// A different session has its own bucket.
	rec, _ = run(mw, map[string]string{CartSessionHeader: "b"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
