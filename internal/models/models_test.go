package models

import (
	"testing"
)

func TestCategoryIsValid(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		want     bool
	}{
		{
			name:     "staple",
			category: CategoryStaple,
			want:     true,
		},
		{
			name:     "drink",
			category: CategoryDrink,
			want:     true,
		},
		{
			name:     "unknown",
			category: Category("dessert"),
			want:     false,
		},
		{
			name:     "empty",
			category: Category(""),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.category.IsValid()
			if result != tt.want {
				t.Errorf("Category(%q).IsValid() = %v, want %v", tt.category, result, tt.want)
			}
		})
	}
}

func TestFoodItemFields(t *testing.T) {
	tests := []struct {
		name string
		item FoodItem
		ok   bool
	}{
		{
			name: "valid item",
			item: FoodItem{
				ID:       "apple",
				Name:     "Apple",
				Emoji:    "🍎",
				Category: CategoryFruit,
				Color:    "bg-red-300",
			},
			ok: true,
		},
		{
			name: "missing id",
			item: FoodItem{
				Name:     "Apple",
				Emoji:    "🍎",
				Category: CategoryFruit,
			},
			ok: false,
		},
		{
			name: "bad category",
			item: FoodItem{
				ID:       "apple",
				Name:     "Apple",
				Emoji:    "🍎",
				Category: Category("snack"),
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid := tt.item.ID != "" && tt.item.Name != "" && tt.item.Category.IsValid()
			if valid != tt.ok {
				t.Errorf("item validity = %v, want %v", valid, tt.ok)
			}
		})
	}
}

func TestLeaderboardEntryLimits(t *testing.T) {
	if MaxLeaderboardEntries != 10 {
		t.Errorf("MaxLeaderboardEntries = %d, want 10", MaxLeaderboardEntries)
	}
	if MaxPlayerNameLength != 10 {
		t.Errorf("MaxPlayerNameLength = %d, want 10", MaxPlayerNameLength)
	}
}
