package server

import (
	"crypto/subtle"
	"net/http"
)

// apiKeyHeader carries the shared request-authentication secret.
const apiKeyHeader = "X-API-Key"

// requireAPIKey rejects requests whose token does not match the configured
// secret, before any network collaborator runs. Comparison is constant-time.
// An empty configured secret disables authentication.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" {
			provided := r.Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(s.apiKey)) != 1 {
				writeError(w, http.StatusUnauthorized, "Invalid or missing API key")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// corsHeaders allows browser-based tool-calling agents to reach the API from
// any origin.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+apiKeyHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
