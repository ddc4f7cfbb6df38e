package service

import (
	"context"
	"testing"

	"foodiefriends/internal/repository"
)

// fakeGenerator returns canned text and records the food names asked about
type fakeGenerator struct {
	asked []string
}

func (g *fakeGenerator) GenerateMysteryClue(_ context.Context, foodName string) string {
	g.asked = append(g.asked, foodName)
	return "I am round and red."
}

func (g *fakeGenerator) GenerateRiddle(_ context.Context, foodName string) string {
	g.asked = append(g.asked, foodName)
	return "You drink me at breakfast. Who am I?"
}

func (g *fakeGenerator) GenerateStory(_ context.Context, foodName string) string {
	g.asked = append(g.asked, foodName)
	return "Once upon a time, " + foodName + " went to the market."
}

func newTestGuess(t *testing.T) (*GuessService, *fakeGenerator) {
	t.Helper()
	db := setupTestDB(t)
	gen := &fakeGenerator{}
	return NewGuessService(repository.NewFoodRepository(db), gen, nil), gen
}

func TestNewMystery(t *testing.T) {
	svc, gen := newTestGuess(t)

	puzzle, err := svc.NewMystery(context.Background())
	if err != nil {
		t.Fatalf("NewMystery() error = %v", err)
	}

	if puzzle.Prompt != "I am round and red." {
		t.Errorf("prompt = %q, want the generated clue", puzzle.Prompt)
	}
	if len(puzzle.Options) != 3 {
		t.Fatalf("options = %d, want 3", len(puzzle.Options))
	}

	seen := make(map[string]bool)
	answerIncluded := false
	for _, opt := range puzzle.Options {
		if seen[opt.ID] {
			t.Errorf("duplicate option %s", opt.ID)
		}
		seen[opt.ID] = true
		if opt.ID == puzzle.AnswerID {
			answerIncluded = true
		}
	}
	if !answerIncluded {
		t.Error("answer must be among the options")
	}

	if len(gen.asked) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.asked))
	}
}

func TestNewRiddle(t *testing.T) {
	svc, _ := newTestGuess(t)

	puzzle, err := svc.NewRiddle(context.Background())
	if err != nil {
		t.Fatalf("NewRiddle() error = %v", err)
	}
	if puzzle.Prompt == "" || puzzle.AnswerID == "" || len(puzzle.Options) != 3 {
		t.Errorf("incomplete puzzle: %+v", puzzle)
	}
}

func TestCheckGuess(t *testing.T) {
	svc, _ := newTestGuess(t)

	correct, feedback := svc.CheckGuess("apple", "apple")
	if !correct || feedback != PhraseCorrect {
		t.Errorf("correct guess = (%v, %q), want (true, %q)", correct, feedback, PhraseCorrect)
	}

	correct, feedback = svc.CheckGuess("apple", "banana")
	if correct || feedback != PhraseTryAgain {
		t.Errorf("wrong guess = (%v, %q), want (false, %q)", correct, feedback, PhraseTryAgain)
	}
}

func TestNewStory(t *testing.T) {
	svc, _ := newTestGuess(t)

	item, story, err := svc.NewStory(context.Background(), "banana")
	if err != nil {
		t.Fatalf("NewStory() error = %v", err)
	}
	if item.ID != "banana" {
		t.Errorf("item = %s, want banana", item.ID)
	}
	if story == "" {
		t.Error("story must not be empty")
	}

	if _, _, err := svc.NewStory(context.Background(), "durian"); err == nil {
		t.Error("unknown food must error")
	}

	// Empty ID picks a random food
	item, _, err = svc.NewStory(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStory(random) error = %v", err)
	}
	if item.ID == "" {
		t.Error("random story must pick a food")
	}
}
