package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestPlayerTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, 5*time.Minute)

	playerID, token, err := issuer.IssuePlayerToken()
	if err != nil {
		t.Fatalf("IssuePlayerToken() error = %v", err)
	}
	if playerID == "" || token == "" {
		t.Fatal("IssuePlayerToken() returned empty ID or token")
	}

	got, err := issuer.ValidatePlayerToken(token)
	if err != nil {
		t.Fatalf("ValidatePlayerToken() error = %v", err)
	}
	if got != playerID {
		t.Errorf("validated player ID = %q, want %q", got, playerID)
	}
}

func TestPlayerTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-one", time.Hour, time.Hour)
	other := NewTokenIssuer("secret-two", time.Hour, time.Hour)

	_, token, err := issuer.IssuePlayerToken()
	if err != nil {
		t.Fatalf("IssuePlayerToken() error = %v", err)
	}

	if _, err := other.ValidatePlayerToken(token); err == nil {
		t.Error("token signed with a different secret must not validate")
	}
}

func TestTokenAudiencesAreNotInterchangeable(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, time.Hour)

	parentToken, err := issuer.IssueParentToken()
	if err != nil {
		t.Fatalf("IssueParentToken() error = %v", err)
	}
	if _, err := issuer.ValidatePlayerToken(parentToken); err == nil {
		t.Error("parent token must not validate as a player token")
	}

	_, playerToken, err := issuer.IssuePlayerToken()
	if err != nil {
		t.Fatalf("IssuePlayerToken() error = %v", err)
	}
	if err := issuer.ValidateParentToken(playerToken); err == nil {
		t.Error("player token must not validate as a parent token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute, -time.Minute)

	_, token, err := issuer.IssuePlayerToken()
	if err != nil {
		t.Fatalf("IssuePlayerToken() error = %v", err)
	}

	if _, err := issuer.ValidatePlayerToken(token); err == nil {
		t.Error("expired token must not validate")
	}
}

func TestCSRFTokenRoundTrip(t *testing.T) {
	gen := NewCSRFGenerator("test-secret")

	token, err := gen.GenerateToken("player-123")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if !gen.ValidateToken("player-123", token) {
		t.Error("valid token rejected")
	}
	if gen.ValidateToken("player-456", token) {
		t.Error("token for a different player accepted")
	}
	if gen.ValidateToken("player-123", "bogus") {
		t.Error("bogus token accepted")
	}
	if gen.ValidateToken("", token) {
		t.Error("empty player ID accepted")
	}
}

func TestCSRFTokensDifferAcrossSecrets(t *testing.T) {
	a, _ := NewCSRFGenerator("secret-a").GenerateToken("player-123")
	b, _ := NewCSRFGenerator("secret-b").GenerateToken("player-123")
	if a == b {
		t.Error("tokens must depend on the secret")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request over the limit should be denied")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("a different IP has its own bucket")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow("1.2.3.4") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("second request should be denied")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("1.2.3.4") {
		t.Error("bucket should refill after the window")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded header wins", "10.0.0.1", "10.0.0.2", "10.0.0.3:1234", "10.0.0.1"},
		{"real ip next", "", "10.0.0.2", "10.0.0.3:1234", "10.0.0.2"},
		{"remote addr fallback", "", "", "10.0.0.3:1234", "10.0.0.3:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsSecureRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	if IsSecureRequest(r) {
		t.Error("plain HTTP request reported secure")
	}

	r.Header.Set("X-Forwarded-Proto", "https")
	if !IsSecureRequest(r) {
		t.Error("X-Forwarded-Proto: https not detected")
	}
}

func TestSessionCookies(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)

	cookie := CreateSessionCookie(r, "foodie_player", "tok", time.Now().Add(time.Hour))
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if cookie.Secure {
		t.Error("plain HTTP request should not set Secure")
	}
	if cookie.Path != "/" {
		t.Errorf("cookie path = %q, want /", cookie.Path)
	}

	del := CreateDeleteCookie(r, "foodie_player")
	if del.MaxAge != -1 || del.Value != "" {
		t.Error("delete cookie must expire immediately with an empty value")
	}
}
