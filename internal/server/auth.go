// ABOUTME: Cookie-based single-user auth gate for the HTTP API.
// ABOUTME: The cookie value is the SHA-256 hex of the configured password.
package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
)

const (
	// AuthCookieName is the session cookie issued on login.
	AuthCookieName = "fitness_auth"
	// CookieMaxAge is the cookie lifetime in seconds (7 days).
	CookieMaxAge = 60 * 60 * 24 * 7
)

// Auth gates API routes behind a single shared password.
type Auth struct {
	token string
}

// NewAuth derives the auth token from the configured password.
func NewAuth(password string) *Auth {
	sum := sha256.Sum256([]byte(password))
	return &Auth{token: hex.EncodeToString(sum[:])}
}

// isAuthenticated checks the request's auth cookie against the token.
func (a *Auth) isAuthenticated(r *http.Request) bool {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(a.token)) == 1
}

// Require is middleware that rejects unauthenticated requests with 401.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.isAuthenticated(r) {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loginRequest struct {
	Password string `json:"password"`
}

// handleLogin verifies the password and issues the auth cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Password required")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.password)) != 1 {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    s.auth.token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
