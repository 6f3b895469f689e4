package handler

import (
	"log/slog"
	"net/http"

	"fileup/internal/auth"
	"fileup/internal/httputil"
	"fileup/internal/models"
	"fileup/internal/service"
)

// AccountHandler handles sign-up, log-in, log-out and the home view
type AccountHandler struct {
	accounts *service.AccountService
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *service.AccountService, sessions *auth.SessionManager, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
	}
}

// SignUp registers a new user
// POST /api/sign-up
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.accounts.SignUp(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// LogIn verifies credentials and starts a session
// POST /api/log-in
func (h *AccountHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var req models.LogInRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	session, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	h.sessions.SetCookie(w, session)

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// LogOut ends the current session
// POST /api/log-out
func (h *AccountHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	if token, ok := h.sessions.TokenFromRequest(r); ok {
		if err := h.sessions.Destroy(r.Context(), token); err != nil {
			handleError(w, h.logger, err)
			return
		}
	}
	h.sessions.ClearCookie(w)

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Home returns the logged-in user and their files across all folders
// GET /api/home
func (h *AccountHandler) Home(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	user, files, err := h.accounts.Home(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if files == nil {
		files = []models.File{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"loggedUser": user,
		"myFiles":    files,
	})
}
