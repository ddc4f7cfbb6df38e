package service

import (
	"path/filepath"
	"strings"
	"testing"

	"foodiefriends/internal/models"
	"foodiefriends/internal/repository"
)

func TestBackupRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	leaderboard := repository.NewLeaderboardRepository(db)
	settings := repository.NewSettingsRepository(db)

	if _, err := leaderboard.Insert(models.LeaderboardEntry{Name: "Maya", Score: 42, Date: "Sep 1, 2026"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := settings.Set(repository.SettingBackupEmail, "parent@example.com"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	svc := NewBackupService(db)
	backupPath := filepath.Join(t.TempDir(), "backup.json")
	if err := svc.Export(backupPath); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// Wreck the data, then restore
	if err := leaderboard.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}
	if _, err := db.Exec(`DELETE FROM food_items`); err != nil {
		t.Fatalf("clear food_items error = %v", err)
	}

	if err := svc.Import(backupPath); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	foods, err := repository.NewFoodRepository(db).GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(foods) != 22 {
		t.Errorf("restored catalog size = %d, want 22", len(foods))
	}

	entries, err := leaderboard.GetTop(10)
	if err != nil {
		t.Fatalf("GetTop() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Maya" || entries[0].Score != 42 {
		t.Errorf("restored scores = %+v, want Maya/42", entries)
	}

	email, ok, err := settings.Get(repository.SettingBackupEmail)
	if err != nil || !ok || email != "parent@example.com" {
		t.Errorf("restored setting = %q ok=%v err=%v", email, ok, err)
	}
}

func TestBuildRawEmail(t *testing.T) {
	raw, err := buildRawEmail(
		"Foodie Friends <app@example.com>",
		"parent@example.com",
		"Backup",
		"Attached.",
		"backup.json",
		[]byte(`{"version":"1.0"}`),
	)
	if err != nil {
		t.Fatalf("buildRawEmail() error = %v", err)
	}

	msg := string(raw)
	for _, want := range []string{
		"From: Foodie Friends <app@example.com>",
		"To: parent@example.com",
		"Subject: Backup",
		"multipart/mixed",
		`attachment; filename="backup.json"`,
		"base64",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("raw email missing %q", want)
		}
	}
}
