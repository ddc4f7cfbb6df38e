package database

import (
	"path/filepath"
	"testing"
)

// TestDatabaseIntegration tests the complete database lifecycle with SQLite
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test_integration.db")

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	tables := []string{"leaderboard_entries", "food_items", "settings"}
	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRow(query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// Migrations are tracked, so a second run is a no-op
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
}

// TestSeedFoodCatalog tests that seeding is complete and idempotent
func TestSeedFoodCatalog(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test_seed.db")

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	if err := db.SeedFoodCatalog(); err != nil {
		t.Fatalf("Failed to seed food catalog: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM food_items").Scan(&count); err != nil {
		t.Fatalf("Failed to count food items: %v", err)
	}
	if count != len(defaultCatalog) {
		t.Errorf("food_items count = %d, want %d", count, len(defaultCatalog))
	}

	// Reseeding inserts nothing new
	if err := db.SeedFoodCatalog(); err != nil {
		t.Fatalf("Reseed failed: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM food_items").Scan(&count); err != nil {
		t.Fatalf("Failed to count food items after reseed: %v", err)
	}
	if count != len(defaultCatalog) {
		t.Errorf("food_items count after reseed = %d, want %d", count, len(defaultCatalog))
	}
}
