package handlers

import (
	"html/template"
	"net/http"

	"foodiefriends/internal/service"
)

// GuessHandler serves the mystery clue game, the riddle game, and story time
type GuessHandler struct {
	guess     *service.GuessService
	templates *template.Template
}

// NewGuessHandler creates a new guessing game handler
func NewGuessHandler(guess *service.GuessService, templates *template.Template) *GuessHandler {
	return &GuessHandler{
		guess:     guess,
		templates: templates,
	}
}

// ShowMystery renders the mystery guess page with a fresh puzzle
func (h *GuessHandler) ShowMystery(w http.ResponseWriter, r *http.Request) {
	puzzle, err := h.guess.NewMystery(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to deal mystery puzzle", err)
		return
	}

	data := GuessViewData{
		Title:  "Mystery Guess",
		Puzzle: puzzle,
		Kind:   "mystery",
	}
	if err := h.templates.ExecuteTemplate(w, "guess.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render mystery page", err)
	}
}

// ShowRiddle renders the riddle page with a fresh puzzle
func (h *GuessHandler) ShowRiddle(w http.ResponseWriter, r *http.Request) {
	puzzle, err := h.guess.NewRiddle(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to deal riddle", err)
		return
	}

	data := GuessViewData{
		Title:  "Mystery Food",
		Puzzle: puzzle,
		Kind:   "riddle",
	}
	if err := h.templates.ExecuteTemplate(w, "guess.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render riddle page", err)
	}
}

// NewMystery deals a fresh mystery puzzle as JSON
func (h *GuessHandler) NewMystery(w http.ResponseWriter, r *http.Request) {
	puzzle, err := h.guess.NewMystery(r.Context())
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to deal mystery puzzle", err)
		return
	}
	respondWithJSON(w, http.StatusOK, puzzle)
}

// NewRiddle deals a fresh riddle as JSON
func (h *GuessHandler) NewRiddle(w http.ResponseWriter, r *http.Request) {
	puzzle, err := h.guess.NewRiddle(r.Context())
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to deal riddle", err)
		return
	}
	respondWithJSON(w, http.StatusOK, puzzle)
}

// CheckGuess resolves a guess and returns feedback
func (h *GuessHandler) CheckGuess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithJSONError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	answerID := r.FormValue("answerId")
	guessID := r.FormValue("guessId")
	if answerID == "" || guessID == "" {
		respondWithJSONError(w, http.StatusBadRequest, "answerId and guessId are required", "", nil)
		return
	}

	correct, feedback := h.guess.CheckGuess(answerID, guessID)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"correct":  correct,
		"feedback": feedback,
	})
}

// ShowStory renders story time for a chosen (or random) food
func (h *GuessHandler) ShowStory(w http.ResponseWriter, r *http.Request) {
	foodID := r.URL.Query().Get("food")

	item, story, err := h.guess.NewStory(r.Context(), foodID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to generate story", err)
		return
	}

	data := StoryViewData{
		Title: "Story Time",
		Item:  item,
		Story: story,
	}
	if err := h.templates.ExecuteTemplate(w, "story.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render story page", err)
	}
}
