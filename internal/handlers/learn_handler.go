package handlers

import (
	"html/template"
	"net/http"

	"foodiefriends/internal/models"
	"foodiefriends/internal/repository"
)

// LearnHandler serves the flashcard pages
type LearnHandler struct {
	foodRepo  *repository.FoodRepository
	templates *template.Template
}

// NewLearnHandler creates a new learn handler
func NewLearnHandler(foodRepo *repository.FoodRepository, templates *template.Template) *LearnHandler {
	return &LearnHandler{
		foodRepo:  foodRepo,
		templates: templates,
	}
}

// Home shows the flashcard grid, optionally filtered by category
func (h *LearnHandler) Home(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var items []models.FoodItem
	var err error
	if category == "" || category == "all" {
		category = "all"
		items, err = h.foodRepo.GetAll()
	} else if models.Category(category).IsValid() {
		items, err = h.foodRepo.GetByCategory(models.Category(category))
	} else {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load food catalog", err)
		return
	}

	data := LearnViewData{
		Title:          "Foodie Friends",
		Tabs:           categoryTabs,
		ActiveCategory: category,
		Items:          items,
	}
	if err := h.templates.ExecuteTemplate(w, "learn.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render learn page", err)
	}
}

// Catalog returns the food catalog as JSON for the front-end games
func (h *LearnHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	items, err := h.foodRepo.GetAll()
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load food catalog", err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}
