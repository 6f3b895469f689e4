package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileup/internal/domain"
	"fileup/internal/repository/memory"
)

func newManager(ttl time.Duration) *SessionManager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSessionManager(memory.NewSessionRepository(), ttl, logger)
}

func TestSessionLifecycle(t *testing.T) {
	m := newManager(time.Hour)
	ctx := context.Background()

	session, err := m.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, session.Token, 64) // 32 random bytes, hex encoded

	userID, err := m.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	require.NoError(t, m.Destroy(ctx, session.Token))

	_, err = m.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolveUnknownToken(t *testing.T) {
	m := newManager(time.Hour)

	_, err := m.Resolve(context.Background(), "bogus")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolveExpiredSession(t *testing.T) {
	m := newManager(-time.Minute)
	ctx := context.Background()

	session, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	_, err = m.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokensAreUnique(t *testing.T) {
	m := newManager(time.Hour)
	ctx := context.Background()

	first, err := m.Create(ctx, "user-1")
	require.NoError(t, err)
	second, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestCookieRoundTrip(t *testing.T) {
	m := newManager(time.Hour)
	ctx := context.Background()

	session, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetCookie(rec, session)

	res := rec.Result()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/api/home", nil)
	r.AddCookie(cookies[0])

	token, ok := m.TokenFromRequest(r)
	require.True(t, ok)
	assert.Equal(t, session.Token, token)
}

func TestClearCookie(t *testing.T) {
	m := newManager(time.Hour)

	rec := httptest.NewRecorder()
	m.ClearCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
