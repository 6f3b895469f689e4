package httputil

import (
	"encoding/json"
	"net/http"
)

// Every response carries a success boolean; clients branch on it rather than
// solely on the HTTP status.

// RespondJSON writes a JSON response with the given status code.
// It marshals first so an encoding failure cannot produce a partial body
// after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// errorBody is the failure envelope
type errorBody struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// RespondError writes a failure envelope with the given status and detail
func RespondError(w http.ResponseWriter, status int, detail string) {
	writeErrorBody(w, status, errorBody{Success: false, Error: detail})
}

// RespondUnauthorized writes a 401 failure envelope with a redirect hint
// pointing the client at the login page
func RespondUnauthorized(w http.ResponseWriter, detail string) {
	writeErrorBody(w, http.StatusUnauthorized, errorBody{
		Success:  false,
		Error:    detail,
		Redirect: "/log-in",
	})
}

func writeErrorBody(w http.ResponseWriter, status int, body errorBody) {
	payload, err := json.Marshal(body)
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
