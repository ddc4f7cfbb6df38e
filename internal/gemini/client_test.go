package gemini

import (
	"context"
	"testing"
)

// Without an API key the client must serve the canned lines rather than
// erroring in front of a child.
func TestUnconfiguredClientFallsBack(t *testing.T) {
	client, err := NewClient(context.Background(), "", "gemini-2.5-flash")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.Enabled() {
		t.Error("client without an API key must not report enabled")
	}

	ctx := context.Background()
	if got := client.GenerateMysteryClue(ctx, "Apple"); got != FallbackClue {
		t.Errorf("GenerateMysteryClue() = %q, want fallback clue", got)
	}
	if got := client.GenerateRiddle(ctx, "Apple"); got != FallbackRiddle {
		t.Errorf("GenerateRiddle() = %q, want fallback riddle", got)
	}
	if got := client.GenerateStory(ctx, "Apple"); got != FallbackStory {
		t.Errorf("GenerateStory() = %q, want fallback story", got)
	}
}
