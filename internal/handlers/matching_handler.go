package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"foodiefriends/internal/game"
	"foodiefriends/internal/models"
	"foodiefriends/internal/security"
	"foodiefriends/internal/service"
)

// MatchingHandler serves the memory matching game page and its JSON API
type MatchingHandler struct {
	matching    *service.MatchingService
	leaderboard *service.LeaderboardService
	csrf        *security.CSRFGenerator
	templates   *template.Template
}

// NewMatchingHandler creates a new matching game handler
func NewMatchingHandler(matching *service.MatchingService, leaderboard *service.LeaderboardService, csrf *security.CSRFGenerator, templates *template.Template) *MatchingHandler {
	return &MatchingHandler{
		matching:    matching,
		leaderboard: leaderboard,
		csrf:        csrf,
		templates:   templates,
	}
}

// stateResponse is the JSON shape the game board polls for
type stateResponse struct {
	game.Snapshot
	Qualifies bool `json:"qualifies"`
	Score     int  `json:"score"`
}

// ShowPlay renders the game page shell; the board itself runs on the API
func (h *MatchingHandler) ShowPlay(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerFromContext(r.Context())
	csrfToken, err := h.csrf.GenerateToken(playerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to generate CSRF token", err)
		return
	}

	data := PlayViewData{
		Title:     "Match the Food",
		CSRFToken: csrfToken,
	}
	if err := h.templates.ExecuteTemplate(w, "play.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render play page", err)
	}
}

// StartRound deals a fresh round and returns its state
func (h *MatchingHandler) StartRound(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerFromContext(r.Context())

	snap, err := h.matching.StartRound(playerID)
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, "Could not start the game", "Failed to start round", err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.stateFor(playerID, snap))
}

// GetState returns the current round state
func (h *MatchingHandler) GetState(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerFromContext(r.Context())

	snap, err := h.matching.GetState(playerID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveRound) {
			respondWithJSONError(w, http.StatusNotFound, "No game in progress", "", nil)
			return
		}
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to read round state", err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.stateFor(playerID, snap))
}

// SelectCard flips a card and returns the new state
func (h *MatchingHandler) SelectCard(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerFromContext(r.Context())

	cardID := r.PathValue("cardId")
	if cardID == "" {
		respondWithJSONError(w, http.StatusBadRequest, "Card ID is required", "", nil)
		return
	}

	snap, err := h.matching.SelectCard(playerID, cardID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveRound) {
			respondWithJSONError(w, http.StatusNotFound, "No game in progress", "", nil)
			return
		}
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to select card", err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.stateFor(playerID, snap))
}

// SubmitScore records the winning score on the Hall of Fame
func (h *MatchingHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondWithJSONError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	name := r.FormValue("name")

	entry, err := h.matching.SubmitScore(playerID, name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveRound), errors.Is(err, service.ErrRoundNotWon):
			respondWithJSONError(w, http.StatusConflict, "Finish the game first!", "", nil)
		case errors.Is(err, service.ErrScoreAlreadySent):
			respondWithJSONError(w, http.StatusConflict, "Score already saved", "", nil)
		case errors.Is(err, service.ErrEmptyName):
			respondWithJSONError(w, http.StatusBadRequest, "Please type your name", "", nil)
		default:
			respondWithJSONError(w, http.StatusInternalServerError, "Could not save your score", "Failed to submit score", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}

// Leaderboard returns the Hall of Fame as JSON
func (h *MatchingHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.GetLeaderboard()
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load leaderboard", err)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// ShowLeaderboard renders the Hall of Fame page
func (h *MatchingHandler) ShowLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.GetLeaderboard()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load leaderboard", err)
		return
	}

	data := LeaderboardViewData{
		Title:   "Hall of Fame",
		Entries: entries,
	}
	if err := h.templates.ExecuteTemplate(w, "leaderboard.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render leaderboard", err)
	}
}

func (h *MatchingHandler) stateFor(playerID string, snap game.Snapshot) stateResponse {
	resp := stateResponse{Snapshot: snap}
	if snap.Phase == game.PhaseWon {
		qualifies, score, err := h.matching.IsQualifying(playerID)
		if err == nil {
			resp.Qualifies = qualifies
			resp.Score = score
		}
	}
	return resp
}
