package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"foodiefriends/internal/database"
	"foodiefriends/internal/models"
	"foodiefriends/internal/repository"
)

// BackupData is the complete portable export: the food catalog, the Hall of
// Fame, and the app settings.
type BackupData struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	FoodItems  []models.FoodItem `json:"food_items"`
	Scores     []ScoreBackup     `json:"scores"`
	Settings   map[string]string `json:"settings"`
}

// ScoreBackup is one leaderboard row in a backup
type ScoreBackup struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// BackupService exports and restores the database as JSON. Exports are
// dialect-neutral so a SQLite install can be restored into Postgres.
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return s.ExportTo(file)
}

// ExportTo writes a complete backup to a writer
func (s *BackupService) ExportTo(w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Settings:   make(map[string]string),
	}

	foods, err := repository.NewFoodRepository(s.db).GetAll()
	if err != nil {
		return fmt.Errorf("failed to export food items: %w", err)
	}
	backup.FoodItems = foods

	// Export every score, not just the visible top, ordered best first
	entries, err := repository.NewLeaderboardRepository(s.db).GetTop(1 << 30)
	if err != nil {
		return fmt.Errorf("failed to export scores: %w", err)
	}
	for _, e := range entries {
		backup.Scores = append(backup.Scores, ScoreBackup{Name: e.Name, Score: e.Score, Date: e.Date})
	}

	settingsRepo := repository.NewSettingsRepository(s.db)
	for _, key := range []string{repository.SettingParentPINHash, repository.SettingBackupEmail} {
		if value, ok, err := settingsRepo.Get(key); err != nil {
			return fmt.Errorf("failed to export setting %s: %w", key, err)
		} else if ok {
			backup.Settings[key] = value
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d food items, %d scores, %d settings",
		len(backup.FoodItems), len(backup.Scores), len(backup.Settings))
	return nil
}

// Import restores the database from a backup file, replacing current data
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM leaderboard_entries`); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM food_items`); err != nil {
		return fmt.Errorf("failed to clear food catalog: %w", err)
	}

	for _, item := range backup.FoodItems {
		if _, err := tx.Exec(`
			INSERT INTO food_items (id, name, emoji, category, color)
			VALUES (?, ?, ?, ?, ?)`,
			item.ID, item.Name, item.Emoji, string(item.Category), item.Color); err != nil {
			return fmt.Errorf("failed to restore food item %s: %w", item.ID, err)
		}
	}

	for _, score := range backup.Scores {
		if _, err := tx.Exec(`
			INSERT INTO leaderboard_entries (name, score, date)
			VALUES (?, ?, ?)`,
			score.Name, score.Score, score.Date); err != nil {
			return fmt.Errorf("failed to restore score for %s: %w", score.Name, err)
		}
	}

	upsert := tx.GetDialect().UpsertSettingQuery()
	for key, value := range backup.Settings {
		if _, err := tx.Exec(upsert, key, value); err != nil {
			return fmt.Errorf("failed to restore setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("Imported: %d food items, %d scores, %d settings",
		len(backup.FoodItems), len(backup.Scores), len(backup.Settings))
	return nil
}
