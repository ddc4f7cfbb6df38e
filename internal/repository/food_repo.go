package repository

import (
	"database/sql"
	"fmt"

	"foodiefriends/internal/database"
	"foodiefriends/internal/models"
)

// FoodRepository handles food catalog persistence
type FoodRepository struct {
	db database.DBTX
}

// NewFoodRepository creates a new food repository
func NewFoodRepository(db database.DBTX) *FoodRepository {
	return &FoodRepository{db: db}
}

// GetAll returns the full catalog grouped by category
func (r *FoodRepository) GetAll() ([]models.FoodItem, error) {
	rows, err := r.db.Query(`
		SELECT id, name, emoji, category, color
		FROM food_items
		ORDER BY category, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query food items: %w", err)
	}
	defer rows.Close()

	return scanFoodItems(rows)
}

// GetByCategory returns every item in one category
func (r *FoodRepository) GetByCategory(category models.Category) ([]models.FoodItem, error) {
	rows, err := r.db.Query(`
		SELECT id, name, emoji, category, color
		FROM food_items
		WHERE category = ?
		ORDER BY id`, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to query food items by category: %w", err)
	}
	defer rows.Close()

	return scanFoodItems(rows)
}

// GetByID returns a single item, or sql.ErrNoRows if it doesn't exist
func (r *FoodRepository) GetByID(id string) (models.FoodItem, error) {
	var item models.FoodItem
	err := r.db.QueryRow(`
		SELECT id, name, emoji, category, color
		FROM food_items
		WHERE id = ?`, id).Scan(&item.ID, &item.Name, &item.Emoji, &item.Category, &item.Color)
	if err != nil {
		return models.FoodItem{}, err
	}
	return item, nil
}

// Count returns the number of catalog items
func (r *FoodRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM food_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count food items: %w", err)
	}
	return count, nil
}

func scanFoodItems(rows *sql.Rows) ([]models.FoodItem, error) {
	var items []models.FoodItem
	for rows.Next() {
		var item models.FoodItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Emoji, &item.Category, &item.Color); err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating food items: %w", err)
	}
	return items, nil
}
