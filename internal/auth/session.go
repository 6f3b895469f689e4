// Package auth implements cookie-based session authentication backed by the
// session repository.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fileup/internal/domain"
	"fileup/internal/models"
	"fileup/internal/repository"
)

// CookieName is the session cookie carrying the opaque token.
const CookieName = "fileup_session"

// sweepInterval is how often the janitor removes expired sessions.
const sweepInterval = 2 * time.Minute

// SessionManager creates, resolves and destroys login sessions.
type SessionManager struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	logger   *slog.Logger
}

// NewSessionManager creates a session manager with the given session lifetime.
func NewSessionManager(sessions repository.SessionRepository, ttl time.Duration, logger *slog.Logger) *SessionManager {
	return &SessionManager{
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
	}
}

// Create starts a new session for userID and returns it.
func (m *SessionManager) Create(ctx context.Context, userID string) (*models.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	session := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.ttl),
	}

	if err := m.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Resolve maps a session token to the owning user ID. Unknown or expired
// tokens fail with ErrUnauthorized.
func (m *SessionManager) Resolve(ctx context.Context, token string) (string, error) {
	session, err := m.sessions.GetByToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: no valid session", domain.ErrUnauthorized)
	}
	return session.UserID, nil
}

// Destroy ends a session. Destroying an unknown token is not an error.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	return m.sessions.Delete(ctx, token)
}

// SetCookie attaches the session cookie to the response.
func (m *SessionManager) SetCookie(w http.ResponseWriter, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on the client.
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest extracts the session token from the request cookie.
func (m *SessionManager) TokenFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// RunJanitor periodically deletes expired sessions until ctx is cancelled.
func (m *SessionManager) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := m.sessions.DeleteExpired(ctx)
			if err != nil {
				m.logger.Error("session sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				m.logger.Debug("expired sessions removed", "count", removed)
			}
		}
	}
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
