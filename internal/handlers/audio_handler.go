package handlers

import (
	"net/http"
	"path/filepath"

	"foodiefriends/internal/audio"
)

// AudioHandler serves cached speech MP3s, generating them on first request
type AudioHandler struct {
	tts      *audio.TTSService
	audioDir string
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(tts *audio.TTSService, audioDir string) *AudioHandler {
	return &AudioHandler{
		tts:      tts,
		audioDir: audioDir,
	}
}

// Speak returns the MP3 for a phrase, generating and caching it if needed
func (h *AudioHandler) Speak(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" || len(text) > 100 {
		http.Error(w, "text parameter is required (max 100 characters)", http.StatusBadRequest)
		return
	}

	filename, err := h.tts.GenerateAudioFile(text)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Speech is taking a nap", "Failed to generate audio", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, filepath.Join(h.audioDir, filename))
}
