package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"foodiefriends/internal/game"
	"foodiefriends/internal/models"
	"foodiefriends/internal/repository"
)

// Spoken feedback phrases shared by the guessing games.
const (
	PhraseCorrect        = "Correct! Good job!"
	PhraseTryAgain       = "Try again!"
	PhraseRiddleTryAgain = "Oops, try again!"
)

// guessOptionCount is how many foods a puzzle offers: the answer plus two
// distractors.
const guessOptionCount = 3

var ErrUnknownFood = errors.New("unknown food item")

// TextGenerator produces the kid-facing prose for the guessing games.
// Implemented by the gemini client; implementations must return usable text
// even on failure.
type TextGenerator interface {
	GenerateMysteryClue(ctx context.Context, foodName string) string
	GenerateRiddle(ctx context.Context, foodName string) string
	GenerateStory(ctx context.Context, foodName string) string
}

// Puzzle is one round of a guessing game: a generated prompt, the answer,
// and the shuffled options shown to the player.
type Puzzle struct {
	Prompt   string            `json:"prompt"`
	AnswerID string            `json:"answerId"`
	Options  []models.FoodItem `json:"options"`
}

// GuessService runs the mystery-clue and riddle games and story time
type GuessService struct {
	foodRepo *repository.FoodRepository
	gen      TextGenerator
	speaker  game.Speaker
}

// NewGuessService creates a new guessing game service
func NewGuessService(foodRepo *repository.FoodRepository, gen TextGenerator, speaker game.Speaker) *GuessService {
	return &GuessService{
		foodRepo: foodRepo,
		gen:      gen,
		speaker:  speaker,
	}
}

// NewMystery deals a mystery puzzle: a descriptive clue about one random
// food, shown next to three candidate foods.
func (s *GuessService) NewMystery(ctx context.Context) (Puzzle, error) {
	target, options, err := s.dealOptions()
	if err != nil {
		return Puzzle{}, err
	}

	clue := s.gen.GenerateMysteryClue(ctx, target.Name)
	s.pronounce(clue)

	return Puzzle{
		Prompt:   clue,
		AnswerID: target.ID,
		Options:  options,
	}, nil
}

// NewRiddle deals a riddle puzzle: a short two-sentence riddle with three
// candidate foods.
func (s *GuessService) NewRiddle(ctx context.Context) (Puzzle, error) {
	target, options, err := s.dealOptions()
	if err != nil {
		return Puzzle{}, err
	}

	riddle := s.gen.GenerateRiddle(ctx, target.Name)
	s.pronounce(riddle)

	return Puzzle{
		Prompt:   riddle,
		AnswerID: target.ID,
		Options:  options,
	}, nil
}

// CheckGuess resolves a guess against the puzzle's answer and speaks the
// feedback phrase. Wrong guesses never end the puzzle.
func (s *GuessService) CheckGuess(answerID, guessID string) (correct bool, feedback string) {
	if guessID == answerID {
		s.pronounce(PhraseCorrect)
		return true, PhraseCorrect
	}
	s.pronounce(PhraseTryAgain)
	return false, PhraseTryAgain
}

// NewStory returns a short generated story starring the given food, or a
// random one when foodID is empty.
func (s *GuessService) NewStory(ctx context.Context, foodID string) (models.FoodItem, string, error) {
	var item models.FoodItem
	var err error

	if foodID == "" {
		catalog, err := s.foodRepo.GetAll()
		if err != nil {
			return models.FoodItem{}, "", fmt.Errorf("failed to load food catalog: %w", err)
		}
		if len(catalog) == 0 {
			return models.FoodItem{}, "", ErrUnknownFood
		}
		item = catalog[rand.Intn(len(catalog))]
	} else {
		item, err = s.foodRepo.GetByID(foodID)
		if err != nil {
			return models.FoodItem{}, "", ErrUnknownFood
		}
	}

	story := s.gen.GenerateStory(ctx, item.Name)
	return item, story, nil
}

// dealOptions picks a random answer plus two distinct distractors and
// shuffles the three
func (s *GuessService) dealOptions() (models.FoodItem, []models.FoodItem, error) {
	catalog, err := s.foodRepo.GetAll()
	if err != nil {
		return models.FoodItem{}, nil, fmt.Errorf("failed to load food catalog: %w", err)
	}
	if len(catalog) < guessOptionCount {
		return models.FoodItem{}, nil, fmt.Errorf("catalog too small for a puzzle: have %d items", len(catalog))
	}

	shuffled := make([]models.FoodItem, len(catalog))
	copy(shuffled, catalog)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	target := shuffled[0]
	options := make([]models.FoodItem, guessOptionCount)
	copy(options, shuffled[:guessOptionCount])
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return target, options, nil
}

func (s *GuessService) pronounce(text string) {
	if s.speaker != nil {
		s.speaker.Pronounce(text)
	}
}
