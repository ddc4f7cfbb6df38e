package handlers

import (
	"foodiefriends/internal/models"
	"foodiefriends/internal/service"
)

// CategoryTab is one filter tab on the learn page
type CategoryTab struct {
	ID    string
	Label string
	Emoji string
}

// categoryTabs mirrors the card filters shown to kids, "all" first
var categoryTabs = []CategoryTab{
	{ID: "all", Label: "All", Emoji: "🍽️"},
	{ID: string(models.CategoryStaple), Label: "Staple Food", Emoji: "🍞"},
	{ID: string(models.CategoryVegetable), Label: "Veggie", Emoji: "🥦"},
	{ID: string(models.CategoryFruit), Label: "Fruit", Emoji: "🍎"},
	{ID: string(models.CategoryMeat), Label: "Meat", Emoji: "🥩"},
	{ID: string(models.CategoryDrink), Label: "Drink", Emoji: "🧃"},
}

type LearnViewData struct {
	Title          string
	Tabs           []CategoryTab
	ActiveCategory string
	Items          []models.FoodItem
}

type PlayViewData struct {
	Title     string
	CSRFToken string
}

type GuessViewData struct {
	Title  string
	Puzzle service.Puzzle
	Kind   string // "mystery" or "riddle"
}

type StoryViewData struct {
	Title string
	Item  models.FoodItem
	Story string
	Items []models.FoodItem
}

type LeaderboardViewData struct {
	Title   string
	Entries []models.LeaderboardEntry
}

type ParentPINViewData struct {
	Title string
	Error string
}

type GrownupsViewData struct {
	Title        string
	BackupEmail  string
	EmailEnabled bool
	CSRFToken    string
	Error        string
	Success      string
}
