package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"foodiefriends/internal/models"
	"foodiefriends/internal/repository"
)

var (
	ErrEmptyName = errors.New("player name is required")
)

// LeaderboardService handles Hall of Fame business logic
type LeaderboardService struct {
	repo *repository.LeaderboardRepository
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(repo *repository.LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{repo: repo}
}

// GetLeaderboard returns the current top entries, best first
func (s *LeaderboardService) GetLeaderboard() ([]models.LeaderboardEntry, error) {
	return s.repo.GetTop(models.MaxLeaderboardEntries)
}

// IsQualifying reports whether a score would earn a spot on the board.
// Fails open: if the board can't be read, the player still gets to enter
// their name rather than losing the moment.
func (s *LeaderboardService) IsQualifying(score int) bool {
	if score <= 0 {
		return false
	}

	count, err := s.repo.Count()
	if err != nil {
		log.Printf("Failed to count leaderboard entries: %v", err)
		return true
	}
	if count < models.MaxLeaderboardEntries {
		return true
	}

	min, err := s.repo.MinQualifyingScore(models.MaxLeaderboardEntries)
	if err != nil {
		log.Printf("Failed to read minimum qualifying score: %v", err)
		return true
	}
	return score > min
}

// SubmitScore records a winning score. The name is trimmed and truncated to
// the maximum length, and the board is pruned back to the top entries.
func (s *LeaderboardService) SubmitScore(name string, score int) (models.LeaderboardEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.LeaderboardEntry{}, ErrEmptyName
	}
	if runes := []rune(name); len(runes) > models.MaxPlayerNameLength {
		name = string(runes[:models.MaxPlayerNameLength])
	}

	entry := models.LeaderboardEntry{
		Name:  name,
		Score: score,
		Date:  time.Now().Format("Jan 2, 2006"),
	}

	id, err := s.repo.Insert(entry)
	if err != nil {
		return models.LeaderboardEntry{}, fmt.Errorf("failed to save score: %w", err)
	}
	entry.ID = id

	if err := s.repo.Prune(models.MaxLeaderboardEntries); err != nil {
		// The extra row is harmless; the next successful prune removes it
		log.Printf("Failed to prune leaderboard: %v", err)
	}

	return entry, nil
}
