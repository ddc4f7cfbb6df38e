package service

import (
	"path/filepath"
	"testing"

	"foodiefriends/internal/database"
	"foodiefriends/internal/repository"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if err := db.SeedFoodCatalog(); err != nil {
		t.Fatalf("Failed to seed food catalog: %v", err)
	}

	return db
}

func newTestLeaderboard(t *testing.T) (*LeaderboardService, *repository.LeaderboardRepository) {
	t.Helper()
	db := setupTestDB(t)
	repo := repository.NewLeaderboardRepository(db)
	return NewLeaderboardService(repo), repo
}
