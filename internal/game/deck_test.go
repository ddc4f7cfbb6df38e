package game

import (
	"errors"
	"testing"

	"foodiefriends/internal/models"
)

func testCatalog(n int) []models.FoodItem {
	items := []models.FoodItem{
		{ID: "apple", Name: "Apple", Emoji: "🍎", Category: models.CategoryFruit, Color: "bg-red-300"},
		{ID: "banana", Name: "Banana", Emoji: "🍌", Category: models.CategoryFruit, Color: "bg-yellow-300"},
		{ID: "carrot", Name: "Carrot", Emoji: "🥕", Category: models.CategoryVegetable, Color: "bg-orange-300"},
		{ID: "milk", Name: "Milk", Emoji: "🥛", Category: models.CategoryDrink, Color: "bg-blue-100"},
		{ID: "bread", Name: "Bread", Emoji: "🍞", Category: models.CategoryStaple, Color: "bg-amber-200"},
		{ID: "chicken", Name: "Chicken", Emoji: "🍗", Category: models.CategoryMeat, Color: "bg-orange-200"},
		{ID: "tea", Name: "Tea", Emoji: "🍵", Category: models.CategoryDrink, Color: "bg-green-200"},
		{ID: "corn", Name: "Corn", Emoji: "🌽", Category: models.CategoryVegetable, Color: "bg-yellow-300"},
	}
	return items[:n]
}

func TestBuildDeckShape(t *testing.T) {
	catalog := testCatalog(6)

	deck, err := BuildDeck(catalog, 6)
	if err != nil {
		t.Fatalf("BuildDeck() error = %v", err)
	}

	if len(deck) != 12 {
		t.Fatalf("deck length = %d, want 12", len(deck))
	}

	uniqueIDs := make(map[string]bool)
	faces := make(map[string]map[FaceType]int)
	for _, card := range deck {
		if uniqueIDs[card.UniqueID] {
			t.Errorf("duplicate uniqueId %s", card.UniqueID)
		}
		uniqueIDs[card.UniqueID] = true

		if faces[card.ItemID] == nil {
			faces[card.ItemID] = make(map[FaceType]int)
		}
		faces[card.ItemID][card.Face]++

		if card.Flipped || card.Matched {
			t.Errorf("card %s should start face down and unmatched", card.UniqueID)
		}
	}

	if len(faces) != 6 {
		t.Errorf("distinct items in deck = %d, want 6", len(faces))
	}
	for itemID, byFace := range faces {
		if byFace[FaceEmoji] != 1 || byFace[FaceText] != 1 {
			t.Errorf("item %s has faces %v, want one emoji and one text", itemID, byFace)
		}
	}
}

func TestBuildDeckContent(t *testing.T) {
	catalog := testCatalog(6)
	byID := make(map[string]models.FoodItem)
	for _, item := range catalog {
		byID[item.ID] = item
	}

	deck, err := BuildDeck(catalog, 6)
	if err != nil {
		t.Fatalf("BuildDeck() error = %v", err)
	}

	for _, card := range deck {
		item := byID[card.ItemID]
		switch card.Face {
		case FaceEmoji:
			if card.Content != item.Emoji {
				t.Errorf("emoji card %s content = %q, want %q", card.UniqueID, card.Content, item.Emoji)
			}
			if card.UniqueID != item.ID+"-emoji" {
				t.Errorf("emoji card uniqueId = %q, want %q", card.UniqueID, item.ID+"-emoji")
			}
		case FaceText:
			if card.Content != item.Name {
				t.Errorf("text card %s content = %q, want %q", card.UniqueID, card.Content, item.Name)
			}
			if card.Color != "bg-white" {
				t.Errorf("text card %s color = %q, want bg-white", card.UniqueID, card.Color)
			}
		default:
			t.Errorf("card %s has unknown face %q", card.UniqueID, card.Face)
		}
	}
}

func TestBuildDeckSelectsSubset(t *testing.T) {
	catalog := testCatalog(8)

	deck, err := BuildDeck(catalog, 6)
	if err != nil {
		t.Fatalf("BuildDeck() error = %v", err)
	}

	items := make(map[string]bool)
	for _, card := range deck {
		items[card.ItemID] = true
	}
	if len(items) != 6 {
		t.Errorf("distinct items = %d, want 6 of the 8 catalog items", len(items))
	}
}

func TestBuildDeckInsufficientCatalog(t *testing.T) {
	tests := []struct {
		name        string
		catalogSize int
		pairCount   int
		wantErr     bool
	}{
		{
			name:        "exactly enough",
			catalogSize: 6,
			pairCount:   6,
			wantErr:     false,
		},
		{
			name:        "one short",
			catalogSize: 5,
			pairCount:   6,
			wantErr:     true,
		},
		{
			name:        "empty catalog",
			catalogSize: 0,
			pairCount:   6,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildDeck(testCatalog(tt.catalogSize), tt.pairCount)
			if tt.wantErr {
				if !errors.Is(err, ErrInsufficientCatalog) {
					t.Errorf("BuildDeck() error = %v, want ErrInsufficientCatalog", err)
				}
			} else if err != nil {
				t.Errorf("BuildDeck() unexpected error = %v", err)
			}
		})
	}
}
