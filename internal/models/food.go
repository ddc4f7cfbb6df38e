package models

// Category classifies a food item for the learn view filter
type Category string

const (
	CategoryStaple    Category = "staple"
	CategoryVegetable Category = "vegetable"
	CategoryFruit     Category = "fruit"
	CategoryMeat      Category = "meat"
	CategoryDrink     Category = "drink"
)

// Categories lists all valid categories in display order
var Categories = []Category{
	CategoryStaple,
	CategoryVegetable,
	CategoryFruit,
	CategoryMeat,
	CategoryDrink,
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FoodItem is one entry in the vocabulary catalog.
// The catalog is seeded into the database at startup and read-only afterwards.
type FoodItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Emoji    string   `json:"emoji"`
	Category Category `json:"category"`
	Color    string   `json:"color"` // CSS background class for the card
}
