package models

const (
	// MaxLeaderboardEntries is the number of scores kept in the Hall of Fame
	MaxLeaderboardEntries = 10

	// MaxPlayerNameLength is the longest name accepted on score submission
	MaxPlayerNameLength = 10
)

// LeaderboardEntry is one Hall of Fame row. Score is the number of seconds
// left on the clock when the player won, so higher is better.
type LeaderboardEntry struct {
	ID    int64  `json:"-"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
}
