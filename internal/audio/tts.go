package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TTSService fetches spoken MP3s for food names and game phrases and caches
// them on disk, so the browser can play them without a speech API key.
type TTSService struct {
	audioDir string
}

const ttsRequestTimeout = 10 * time.Second

// NewTTSService creates a new TTS service caching files under audioDir
func NewTTSService(audioDir string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
	}
}

// Filename returns the cache filename used for a phrase
func (s *TTSService) Filename(text string) string {
	sanitized := strings.ToLower(strings.TrimSpace(text))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")
	sanitized = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return -1
	}, sanitized)
	return fmt.Sprintf("say_%s.mp3", sanitized)
}

// GenerateAudioFile converts text to speech and saves it as MP3.
// Returns the filename (not full path); cached files are reused.
func (s *TTSService) GenerateAudioFile(text string) (string, error) {
	filename := s.Filename(text)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	// Google Translate TTS is free and needs no API key
	if err := s.generateUsingGoogleTTS(text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// Pronounce fetches the audio for a phrase in the background so the file is
// cached by the time the browser asks for it. Errors are logged, never fatal.
func (s *TTSService) Pronounce(text string) {
	go func() {
		if _, err := s.GenerateAudioFile(text); err != nil {
			log.Printf("Failed to pre-generate audio for %q: %v", text, err)
		}
	}()
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech endpoint
func (s *TTSService) generateUsingGoogleTTS(text, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(context.Background(), ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// User agent is required by Google
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	client := &http.Client{Timeout: ttsRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// WarmCache generates audio for every phrase, skipping ones already cached.
// Called at startup with the food names and the fixed game phrases.
func (s *TTSService) WarmCache(phrases []string) {
	for _, phrase := range phrases {
		if _, err := s.GenerateAudioFile(phrase); err != nil {
			log.Printf("Failed to warm audio cache for %q: %v", phrase, err)
		}
	}
}

// GetAllAudioFiles returns every cached MP3 filename
func (s *TTSService) GetAllAudioFiles() ([]string, error) {
	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var audioFiles []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".mp3" {
			audioFiles = append(audioFiles, file.Name())
		}
	}

	return audioFiles, nil
}
