package game

import (
	"errors"
	"fmt"
	"math/rand"

	"foodiefriends/internal/models"
)

// PairCount is the number of food pairs dealt into one round
const PairCount = 6

// FaceType says which side of a vocabulary item a card shows
type FaceType string

const (
	FaceEmoji FaceType = "emoji"
	FaceText  FaceType = "text"
)

// Card is one face in the matching deck. Each selected food item
// contributes exactly two cards: an emoji face and a text face.
type Card struct {
	UniqueID string   `json:"uniqueId"`
	ItemID   string   `json:"foodId"`
	Content  string   `json:"content"`
	Face     FaceType `json:"type"`
	Flipped  bool     `json:"isFlipped"`
	Matched  bool     `json:"isMatched"`
	Color    string   `json:"color"`
}

// ErrInsufficientCatalog is returned when the catalog holds fewer
// distinct items than the requested pair count
var ErrInsufficientCatalog = errors.New("catalog has fewer items than requested pair count")

// BuildDeck selects pairCount distinct items uniformly at random from the
// catalog and returns a uniformly shuffled deck of 2*pairCount cards.
// rand.Shuffle is a Fisher-Yates shuffle, so every permutation is equally
// likely; selection works by shuffling a copy and taking a prefix.
func BuildDeck(catalog []models.FoodItem, pairCount int) ([]Card, error) {
	if len(catalog) < pairCount {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCatalog, len(catalog), pairCount)
	}

	picked := make([]models.FoodItem, len(catalog))
	copy(picked, catalog)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	picked = picked[:pairCount]

	deck := make([]Card, 0, 2*pairCount)
	for _, item := range picked {
		deck = append(deck, Card{
			UniqueID: item.ID + "-emoji",
			ItemID:   item.ID,
			Content:  item.Emoji,
			Face:     FaceEmoji,
			Color:    item.Color,
		})
		// Text cards are plain white so the word has to be read,
		// not matched by color
		deck = append(deck, Card{
			UniqueID: item.ID + "-text",
			ItemID:   item.ID,
			Content:  item.Name,
			Face:     FaceText,
			Color:    "bg-white",
		})
	}

	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	return deck, nil
}
