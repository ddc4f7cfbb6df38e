package service

import (
	"errors"
	"fmt"
	"sync"

	"foodiefriends/internal/game"
	"foodiefriends/internal/models"
	"foodiefriends/internal/repository"
)

var (
	ErrNoActiveRound    = errors.New("no active round")
	ErrRoundNotWon      = errors.New("round is not won")
	ErrScoreAlreadySent = errors.New("score already submitted for this round")
)

// MatchingService owns one matching-game round per player. Rounds live in
// memory; only winning scores reach the database through the leaderboard.
type MatchingService struct {
	foodRepo    *repository.FoodRepository
	leaderboard *LeaderboardService
	speaker     game.Speaker
	opts        game.Options

	mu        sync.Mutex
	rounds    map[string]*game.Round
	submitted map[string]string // playerID -> round token already scored
}

// NewMatchingService creates a new matching game service
func NewMatchingService(foodRepo *repository.FoodRepository, leaderboard *LeaderboardService, speaker game.Speaker, opts game.Options) *MatchingService {
	return &MatchingService{
		foodRepo:    foodRepo,
		leaderboard: leaderboard,
		speaker:     speaker,
		opts:        opts,
		rounds:      make(map[string]*game.Round),
		submitted:   make(map[string]string),
	}
}

// StartRound deals a fresh round for the player, replacing any round in
// progress. The old round is stopped so its pending callbacks go stale.
func (s *MatchingService) StartRound(playerID string) (game.Snapshot, error) {
	catalog, err := s.foodRepo.GetAll()
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to load food catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.rounds[playerID]; ok {
		old.Stop()
	}

	round := game.NewRound(catalog, s.speaker, s.opts)
	if err := round.Start(); err != nil {
		return game.Snapshot{}, err
	}
	s.rounds[playerID] = round
	delete(s.submitted, playerID)

	return round.Snapshot(), nil
}

// GetState returns the player's current round snapshot
func (s *MatchingService) GetState(playerID string) (game.Snapshot, error) {
	round, err := s.round(playerID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return round.Snapshot(), nil
}

// SelectCard flips a card in the player's round and returns the new state.
// Invalid selections are silent no-ops, mirroring taps on the board.
func (s *MatchingService) SelectCard(playerID, cardID string) (game.Snapshot, error) {
	round, err := s.round(playerID)
	if err != nil {
		return game.Snapshot{}, err
	}
	round.SelectCard(cardID)
	return round.Snapshot(), nil
}

// IsQualifying reports whether the player's finished round earns a
// leaderboard spot. Only a won round can qualify; the score is the seconds
// left on the clock.
func (s *MatchingService) IsQualifying(playerID string) (qualifies bool, score int, err error) {
	round, err := s.round(playerID)
	if err != nil {
		return false, 0, err
	}

	snap := round.Snapshot()
	if snap.Phase != game.PhaseWon {
		return false, 0, nil
	}
	return s.leaderboard.IsQualifying(snap.SecondsLeft), snap.SecondsLeft, nil
}

// SubmitScore records the player's winning score on the leaderboard. The
// round token gates resubmission: one score per won round.
func (s *MatchingService) SubmitScore(playerID, name string) (models.LeaderboardEntry, error) {
	s.mu.Lock()
	round, ok := s.rounds[playerID]
	if !ok {
		s.mu.Unlock()
		return models.LeaderboardEntry{}, ErrNoActiveRound
	}

	snap := round.Snapshot()
	if snap.Phase != game.PhaseWon {
		s.mu.Unlock()
		return models.LeaderboardEntry{}, ErrRoundNotWon
	}

	token := round.Token()
	if s.submitted[playerID] == token {
		s.mu.Unlock()
		return models.LeaderboardEntry{}, ErrScoreAlreadySent
	}
	s.submitted[playerID] = token
	s.mu.Unlock()

	entry, err := s.leaderboard.SubmitScore(name, snap.SecondsLeft)
	if err != nil {
		// Persisting failed, so the round may be scored again
		s.mu.Lock()
		if s.submitted[playerID] == token {
			delete(s.submitted, playerID)
		}
		s.mu.Unlock()
		return models.LeaderboardEntry{}, err
	}

	return entry, nil
}

// StopRound abandons the player's round, if any
func (s *MatchingService) StopRound(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if round, ok := s.rounds[playerID]; ok {
		round.Stop()
		delete(s.rounds, playerID)
		delete(s.submitted, playerID)
	}
}

func (s *MatchingService) round(playerID string) (*game.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[playerID]
	if !ok {
		return nil, ErrNoActiveRound
	}
	return round, nil
}
