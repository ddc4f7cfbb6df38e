package audio

import "testing"

func TestFilename(t *testing.T) {
	s := NewTTSService(t.TempDir())

	tests := []struct {
		text string
		want string
	}{
		{"Apple", "say_apple.mp3"},
		{"  Watermelon  ", "say_watermelon.mp3"},
		{"Nice!", "say_nice.mp3"},
		{"Correct! Good job!", "say_correct_good_job.mp3"},
		{"Try again!", "say_try_again.mp3"},
	}

	for _, tt := range tests {
		if got := s.Filename(tt.text); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestFilenameCollisionFree(t *testing.T) {
	s := NewTTSService(t.TempDir())
	names := []string{"Apple", "Banana", "Grapes", "Nice!", "Milk"}
	seen := make(map[string]string)
	for _, name := range names {
		f := s.Filename(name)
		if prev, ok := seen[f]; ok {
			t.Errorf("Filename collision: %q and %q both map to %s", prev, name, f)
		}
		seen[f] = name
	}
}
