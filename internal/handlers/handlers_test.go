package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"foodiefriends/internal/database"
	"foodiefriends/internal/game"
	"foodiefriends/internal/repository"
	"foodiefriends/internal/security"
	"foodiefriends/internal/service"
)

// testApp wires the API routes over a temporary SQLite database
type testApp struct {
	mux  *http.ServeMux
	csrf *security.CSRFGenerator
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if err := db.SeedFoodCatalog(); err != nil {
		t.Fatalf("Failed to seed food catalog: %v", err)
	}

	foodRepo := repository.NewFoodRepository(db)
	leaderboard := service.NewLeaderboardService(repository.NewLeaderboardRepository(db))
	opts := game.Options{
		DurationSecs:  600,
		TickInterval:  5 * time.Millisecond,
		MatchDelay:    5 * time.Millisecond,
		MismatchDelay: 5 * time.Millisecond,
	}
	matching := service.NewMatchingService(foodRepo, leaderboard, nil, opts)

	tokens := security.NewTokenIssuer("test-secret", time.Hour, time.Hour)
	csrf := security.NewCSRFGenerator("test-secret")
	limiter := security.NewRateLimiter(1000, time.Minute)
	mw := NewMiddleware(tokens, csrf, limiter)

	matchingHandler := NewMatchingHandler(matching, leaderboard, csrf, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/play/start", mw.EnsurePlayer(matchingHandler.StartRound))
	mux.HandleFunc("GET /api/play/state", mw.EnsurePlayer(matchingHandler.GetState))
	mux.HandleFunc("POST /api/play/select/{cardId}", mw.EnsurePlayer(matchingHandler.SelectCard))
	mux.HandleFunc("POST /api/play/score", mw.EnsurePlayer(mw.CSRFProtect(matchingHandler.SubmitScore)))
	mux.HandleFunc("GET /api/leaderboard", matchingHandler.Leaderboard)

	return &testApp{mux: mux, csrf: csrf}
}

// do performs a request carrying the session cookies collected so far
func (a *testApp) do(t *testing.T, method, path string, form url.Values, cookies []*http.Cookie) (*httptest.ResponseRecorder, []*http.Cookie) {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)

	merged := cookies
	for _, c := range rec.Result().Cookies() {
		merged = append(merged, c)
	}
	return rec, merged
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) stateResponse {
	t.Helper()
	var state stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("Failed to decode state response: %v", err)
	}
	return state
}

func TestStartRoundIssuesPlayerCookie(t *testing.T) {
	app := newTestApp(t)

	rec, cookies := app.do(t, "POST", "/api/play/start", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	found := false
	for _, c := range cookies {
		if c.Name == PlayerCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("first request must set the player cookie")
	}

	state := decodeState(t, rec)
	if len(state.Cards) != 12 {
		t.Errorf("deck length = %d, want 12", len(state.Cards))
	}
	if state.Phase != game.PhasePlaying {
		t.Errorf("phase = %v, want playing", state.Phase)
	}
}

func TestGetStateWithoutRound(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.do(t, "GET", "/api/play/state", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSelectCardFlow(t *testing.T) {
	app := newTestApp(t)

	rec, cookies := app.do(t, "POST", "/api/play/start", nil, nil)
	state := decodeState(t, rec)

	rec, _ = app.do(t, "POST", "/api/play/select/"+state.Cards[0].UniqueID, nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	state = decodeState(t, rec)
	if state.FlippedCount != 1 {
		t.Errorf("flippedCount = %d, want 1", state.FlippedCount)
	}
}

func TestSubmitScoreRequiresCSRF(t *testing.T) {
	app := newTestApp(t)

	_, cookies := app.do(t, "POST", "/api/play/start", nil, nil)

	form := url.Values{"name": {"Maya"}}
	rec, _ := app.do(t, "POST", "/api/play/score", form, cookies)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status without CSRF token = %d, want 403", rec.Code)
	}
}

func TestSubmitScoreRejectedWhileRoundInProgress(t *testing.T) {
	app := newTestApp(t)

	_, cookies := app.do(t, "POST", "/api/play/start", nil, nil)

	// Recover the player ID from the cookie to mint a valid CSRF token
	tokens := security.NewTokenIssuer("test-secret", time.Hour, time.Hour)
	var playerID string
	for _, c := range cookies {
		if c.Name == PlayerCookieName {
			id, err := tokens.ValidatePlayerToken(c.Value)
			if err != nil {
				t.Fatalf("player cookie did not validate: %v", err)
			}
			playerID = id
		}
	}
	csrfToken, err := app.csrf.GenerateToken(playerID)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	form := url.Values{"name": {"Maya"}, "csrf_token": {csrfToken}}
	rec, _ := app.do(t, "POST", "/api/play/score", form, cookies)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 while the round is unfinished; body: %s", rec.Code, rec.Body.String())
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.do(t, "GET", "/api/leaderboard", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("empty leaderboard body = %s, want []", body)
	}
}
