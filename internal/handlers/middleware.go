package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"foodiefriends/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const PlayerContextKey ContextKey = "player"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  *security.TokenIssuer
	csrf    *security.CSRFGenerator
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenIssuer, csrf *security.CSRFGenerator, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		tokens:  tokens,
		csrf:    csrf,
		limiter: limiter,
	}
}

// EnsurePlayer gives every visitor a signed anonymous player identity. A
// missing or invalid cookie gets a fresh one; kids never see a login.
func (m *Middleware) EnsurePlayer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(PlayerCookieName); err == nil {
			if playerID, err := m.tokens.ValidatePlayerToken(cookie.Value); err == nil {
				ctx := context.WithValue(r.Context(), PlayerContextKey, playerID)
				next(w, r.WithContext(ctx))
				return
			}
		}

		playerID, token, err := m.tokens.IssuePlayerToken()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to issue player token", err)
			return
		}

		expires := time.Now().Add(m.tokens.PlayerTTL())
		http.SetCookie(w, security.CreateSessionCookie(r, PlayerCookieName, token, expires))

		ctx := context.WithValue(r.Context(), PlayerContextKey, playerID)
		next(w, r.WithContext(ctx))
	}
}

// RequireParent guards the grown-ups area behind the PIN gate
func (m *Middleware) RequireParent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(ParentCookieName)
		if err != nil {
			http.Redirect(w, r, "/grownups/pin", http.StatusSeeOther)
			return
		}

		if err := m.tokens.ValidateParentToken(cookie.Value); err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, ParentCookieName))
			http.Redirect(w, r, "/grownups/pin", http.StatusSeeOther)
			return
		}

		next(w, r)
	}
}

// CSRFProtect validates the CSRF token on state-changing requests. The
// token may arrive as a form field or an X-CSRF-Token header.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := GetPlayerFromContext(r.Context())
		if playerID == "" {
			http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
			return
		}

		token := r.Header.Get("X-CSRF-Token")
		if token == "" {
			token = r.FormValue("csrf_token")
		}

		if !m.csrf.ValidateToken(playerID, token) {
			log.Printf("CSRF validation failed for player %s on %s %s", playerID, r.Method, r.URL.Path)
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
			return
		}

		next(w, r)
	}
}

// RateLimit caps request frequency per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			log.Printf("Rate limit exceeded for %s on %s %s", ip, r.Method, r.URL.Path)
			http.Error(w, ErrTooManyRequests, http.StatusTooManyRequests)
			return
		}

		next(w, r)
	}
}

// Logging logs every request with its duration
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetPlayerFromContext retrieves the player ID from the request context
func GetPlayerFromContext(ctx context.Context) string {
	playerID, ok := ctx.Value(PlayerContextKey).(string)
	if !ok {
		return ""
	}
	return playerID
}
