package middleware

import (
	"net/http"

	"fileup/internal/auth"
	"fileup/internal/httputil"
)

// Session rejects requests without a valid session cookie and injects the
// acting user's ID into the request context for everything downstream.
func Session(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := sessions.TokenFromRequest(r)
			if !ok {
				httputil.RespondUnauthorized(w, "authentication required")
				return
			}

			userID, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				httputil.RespondUnauthorized(w, "authentication required")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
