// Package gemini wraps the Google Gemini API for the kid-facing text
// features. Every generator degrades to a friendly canned line when the API
// is unconfigured or fails, so the games always have something to show.
package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// Fallback lines shown when generation fails. Kept playful so a broken API
// key never surfaces an error to a child.
const (
	FallbackClue       = "I am something yummy to eat. Can you guess my name?"
	FallbackRiddle     = "I am something you eat. Who am I?"
	FallbackStory      = "Sorry, I lost my recipe book!"
	FallbackEmptyText  = "I am tasty! Who am I?"
	FallbackEmptyStory = "Oops! The chef couldn't write a story right now."
)

// Client generates clues, riddles and stories for the guessing games.
// A nil inner client (no API key configured) is valid and always falls back.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini-backed generator. An empty API key returns a
// client that serves only fallback lines.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return &Client{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Enabled reports whether a real API client is configured
func (c *Client) Enabled() bool {
	return c.client != nil
}

// GenerateMysteryClue returns a descriptive "Who am I?" clue for the mystery
// game. Targets CEFR A2 so early readers can follow it.
func (c *Client) GenerateMysteryClue(ctx context.Context, foodName string) string {
	prompt := fmt.Sprintf(`Write a "Who am I?" riddle for a child (7-10 years old) describing a %q.

Rules:
1. Start with "I am..."
2. Use CEFR A2 level English (Simple sentences, but descriptive).
3. Describe color, shape, how I am eaten, or what I taste like.
4. Do NOT use the word %q.
5. Length: 30-50 words.`, foodName, foodName)

	text, err := c.generate(ctx, prompt, ptr(float32(0.7)))
	if err != nil {
		log.Printf("Error generating clue: %v", err)
		return FallbackClue
	}
	if text == "" {
		return FallbackEmptyText
	}
	return text
}

// GenerateRiddle returns a short two-sentence riddle for the riddle game
func (c *Client) GenerateRiddle(ctx context.Context, foodName string) string {
	prompt := fmt.Sprintf(`Write a simple "Who am I?" riddle for a 7-year-old child where the answer is %q. Do NOT use the word %q in the riddle. Max 2 sentences.`, foodName, foodName)

	text, err := c.generate(ctx, prompt, nil)
	if err != nil {
		log.Printf("Error generating riddle: %v", err)
		return FallbackRiddle
	}
	if text == "" {
		return FallbackEmptyText
	}
	return text
}

// GenerateStory returns a short kid-friendly story starring the food item
func (c *Client) GenerateStory(ctx context.Context, foodName string) string {
	prompt := fmt.Sprintf(`Write a short story (about 60-80 words) for children aged 7-10 about a character named %q.

Rules:
1. Level: CEFR A2-B1 (Elementary to Intermediate).
2. Use simple grammar (mostly simple past or present tense).
3. Use common adjectives and verbs.
4. Make it funny or adventurous.
5. Do not use complex metaphors.`, foodName)

	text, err := c.generate(ctx, prompt, ptr(float32(0.8)))
	if err != nil {
		log.Printf("Error generating story: %v", err)
		return FallbackStory
	}
	if text == "" {
		return FallbackEmptyStory
	}
	return text
}

func (c *Client) generate(ctx context.Context, prompt string, temperature *float32) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("gemini API key not configured")
	}

	var config *genai.GenerateContentConfig
	if temperature != nil {
		config = &genai.GenerateContentConfig{Temperature: temperature}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.Text()), nil
}

func ptr[T any](v T) *T {
	return &v
}
