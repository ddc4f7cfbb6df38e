package repository

import (
	"fmt"

	"foodiefriends/internal/database"
	"foodiefriends/internal/models"
)

// LeaderboardRepository handles Hall of Fame persistence
type LeaderboardRepository struct {
	db database.DBTX
}

// NewLeaderboardRepository creates a new leaderboard repository
func NewLeaderboardRepository(db database.DBTX) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// GetTop returns up to limit entries, best score first. Ties keep their
// insertion order so an earlier equal score is never displaced in the display.
func (r *LeaderboardRepository) GetTop(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, name, score, date
		FROM leaderboard_entries
		ORDER BY score DESC, id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard entries: %w", err)
	}

	return entries, nil
}

// Insert stores a new score and returns its ID
func (r *LeaderboardRepository) Insert(entry models.LeaderboardEntry) (int64, error) {
	id, err := r.db.ExecReturningID(`
		INSERT INTO leaderboard_entries (name, score, date)
		VALUES (?, ?, ?)`,
		entry.Name, entry.Score, entry.Date)
	if err != nil {
		return 0, fmt.Errorf("failed to insert leaderboard entry: %w", err)
	}
	return id, nil
}

// Prune deletes every entry outside the top keep rows
func (r *LeaderboardRepository) Prune(keep int) error {
	_, err := r.db.Exec(`
		DELETE FROM leaderboard_entries
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id FROM leaderboard_entries
				ORDER BY score DESC, id ASC
				LIMIT ?
			) AS top_entries
		)`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune leaderboard: %w", err)
	}
	return nil
}

// Count returns the number of stored entries
func (r *LeaderboardRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM leaderboard_entries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leaderboard entries: %w", err)
	}
	return count, nil
}

// MinQualifyingScore returns the lowest score currently on the board.
// Only meaningful when the board is full; check Count first.
func (r *LeaderboardRepository) MinQualifyingScore(limit int) (int, error) {
	var score int
	err := r.db.QueryRow(`
		SELECT MIN(score) FROM (
			SELECT score FROM leaderboard_entries
			ORDER BY score DESC, id ASC
			LIMIT ?
		) AS top_entries`, limit).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("failed to query minimum qualifying score: %w", err)
	}
	return score, nil
}

// DeleteAll removes every entry. Used by the restore path.
func (r *LeaderboardRepository) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM leaderboard_entries`)
	if err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}
	return nil
}
