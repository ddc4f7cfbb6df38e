package database

import (
	"fmt"

	"foodiefriends/internal/models"
)

// defaultCatalog is the built-in food vocabulary, seeded on first start.
// The catalog is static at runtime; rows are only ever inserted here.
var defaultCatalog = []models.FoodItem{
	// Staple food
	{ID: "rice", Name: "Rice", Emoji: "🍚", Category: models.CategoryStaple, Color: "bg-amber-100"},
	{ID: "bread", Name: "Bread", Emoji: "🍞", Category: models.CategoryStaple, Color: "bg-amber-200"},
	{ID: "pasta", Name: "Pasta", Emoji: "🍝", Category: models.CategoryStaple, Color: "bg-yellow-200"},
	{ID: "potato", Name: "Potato", Emoji: "🥔", Category: models.CategoryStaple, Color: "bg-yellow-100"},

	// Vegetables
	{ID: "carrot", Name: "Carrot", Emoji: "🥕", Category: models.CategoryVegetable, Color: "bg-orange-300"},
	{ID: "broccoli", Name: "Broccoli", Emoji: "🥦", Category: models.CategoryVegetable, Color: "bg-green-400"},
	{ID: "corn", Name: "Corn", Emoji: "🌽", Category: models.CategoryVegetable, Color: "bg-yellow-300"},
	{ID: "tomato", Name: "Tomato", Emoji: "🍅", Category: models.CategoryVegetable, Color: "bg-red-400"},
	{ID: "eggplant", Name: "Eggplant", Emoji: "🍆", Category: models.CategoryVegetable, Color: "bg-purple-300"},

	// Fruits
	{ID: "apple", Name: "Apple", Emoji: "🍎", Category: models.CategoryFruit, Color: "bg-red-300"},
	{ID: "banana", Name: "Banana", Emoji: "🍌", Category: models.CategoryFruit, Color: "bg-yellow-300"},
	{ID: "grapes", Name: "Grapes", Emoji: "🍇", Category: models.CategoryFruit, Color: "bg-purple-300"},
	{ID: "watermelon", Name: "Watermelon", Emoji: "🍉", Category: models.CategoryFruit, Color: "bg-green-300"},
	{ID: "strawberry", Name: "Strawberry", Emoji: "🍓", Category: models.CategoryFruit, Color: "bg-rose-300"},

	// Meats
	{ID: "chicken", Name: "Chicken", Emoji: "🍗", Category: models.CategoryMeat, Color: "bg-orange-200"},
	{ID: "steak", Name: "Steak", Emoji: "🥩", Category: models.CategoryMeat, Color: "bg-red-200"},
	{ID: "bacon", Name: "Bacon", Emoji: "🥓", Category: models.CategoryMeat, Color: "bg-rose-400"},
	{ID: "shrimp", Name: "Shrimp", Emoji: "🍤", Category: models.CategoryMeat, Color: "bg-pink-200"},

	// Drinks
	{ID: "milk", Name: "Milk", Emoji: "🥛", Category: models.CategoryDrink, Color: "bg-blue-100"},
	{ID: "juice", Name: "Juice", Emoji: "🧃", Category: models.CategoryDrink, Color: "bg-orange-300"},
	{ID: "water", Name: "Water", Emoji: "💧", Category: models.CategoryDrink, Color: "bg-cyan-200"},
	{ID: "tea", Name: "Tea", Emoji: "🍵", Category: models.CategoryDrink, Color: "bg-green-200"},
}

// SeedFoodCatalog inserts any missing catalog items. Existing rows are
// left untouched so a reseed never clobbers manual edits.
func (db *DB) SeedFoodCatalog() error {
	for _, item := range defaultCatalog {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM food_items WHERE id = ?", item.ID).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check food item %s: %w", item.ID, err)
		}

		if count > 0 {
			continue
		}

		_, err = db.Exec(
			"INSERT INTO food_items (id, name, emoji, category, color) VALUES (?, ?, ?, ?, ?)",
			item.ID, item.Name, item.Emoji, string(item.Category), item.Color,
		)
		if err != nil {
			return fmt.Errorf("failed to seed food item %s: %w", item.ID, err)
		}
	}

	return nil
}
