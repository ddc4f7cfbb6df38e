package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"foodiefriends/internal/audio"
	"foodiefriends/internal/config"
	"foodiefriends/internal/database"
	"foodiefriends/internal/game"
	"foodiefriends/internal/gemini"
	"foodiefriends/internal/handlers"
	"foodiefriends/internal/repository"
	"foodiefriends/internal/security"
	"foodiefriends/internal/service"
)

// parentSessionTTL is how long the grown-ups area stays open after a PIN entry
const parentSessionTTL = 15 * time.Minute

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed the food catalog
	if err := db.SeedFoodCatalog(); err != nil {
		log.Fatalf("Failed to seed food catalog: %v", err)
	}

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize repositories
	foodRepo := repository.NewFoodRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize TTS with the audio cache directory
	audioDir := filepath.Join(cfg.StaticFilesPath, "audio")
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		log.Fatalf("Failed to create audio directory: %v", err)
	}
	ttsService := audio.NewTTSService(audioDir)

	// Initialize the Gemini text generator (falls back without an API key)
	geminiClient, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	if !geminiClient.Enabled() {
		log.Println("Gemini disabled: GEMINI_API_KEY not configured, using canned text")
	}

	// Initialize services
	leaderboardService := service.NewLeaderboardService(leaderboardRepo)
	matchingService := service.NewMatchingService(foodRepo, leaderboardService, ttsService, game.Options{})
	guessService := service.NewGuessService(foodRepo, geminiClient, ttsService)
	parentService := service.NewParentService(settingsRepo)
	backupService := service.NewBackupService(db)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, "Foodie Friends")
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Seed the parent PIN and the configured backup address on first start
	if err := parentService.EnsurePIN(cfg.ParentPIN); err != nil {
		log.Fatalf("Failed to seed parent PIN: %v", err)
	}
	if cfg.BackupEmail != "" {
		if email, err := parentService.BackupEmail(); err == nil && email == "" {
			if err := parentService.SetBackupEmail(cfg.BackupEmail); err != nil {
				log.Printf("Warning: Failed to seed backup email: %v", err)
			}
		}
	}

	// Warm the speech cache with food names and game phrases
	go warmAudioCache(ttsService, foodRepo)

	// Initialize handlers
	tokens := security.NewTokenIssuer(cfg.SessionSecret, cfg.SessionDuration, parentSessionTTL)
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	limiter := security.NewRateLimiter(cfg.GenerateRateLimit, cfg.GenerateRateWindow)
	middleware := handlers.NewMiddleware(tokens, csrf, limiter)

	learnHandler := handlers.NewLearnHandler(foodRepo, templates)
	matchingHandler := handlers.NewMatchingHandler(matchingService, leaderboardService, csrf, templates)
	guessHandler := handlers.NewGuessHandler(guessService, templates)
	parentHandler := handlers.NewParentHandler(parentService, backupService, emailService, tokens, csrf, templates)
	audioHandler := handlers.NewAudioHandler(ttsService, audioDir)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Kid-facing pages
	mux.HandleFunc("GET /{$}", middleware.EnsurePlayer(learnHandler.Home))
	mux.HandleFunc("GET /mystery", middleware.EnsurePlayer(middleware.RateLimit(guessHandler.ShowMystery)))
	mux.HandleFunc("GET /riddle", middleware.EnsurePlayer(middleware.RateLimit(guessHandler.ShowRiddle)))
	mux.HandleFunc("GET /story", middleware.EnsurePlayer(middleware.RateLimit(guessHandler.ShowStory)))
	mux.HandleFunc("GET /play", middleware.EnsurePlayer(matchingHandler.ShowPlay))
	mux.HandleFunc("GET /halloffame", matchingHandler.ShowLeaderboard)

	// Matching game API
	mux.HandleFunc("POST /api/play/start", middleware.EnsurePlayer(matchingHandler.StartRound))
	mux.HandleFunc("GET /api/play/state", middleware.EnsurePlayer(matchingHandler.GetState))
	mux.HandleFunc("POST /api/play/select/{cardId}", middleware.EnsurePlayer(matchingHandler.SelectCard))
	mux.HandleFunc("POST /api/play/score", middleware.EnsurePlayer(middleware.CSRFProtect(matchingHandler.SubmitScore)))
	mux.HandleFunc("GET /api/leaderboard", matchingHandler.Leaderboard)

	// Guessing game API
	mux.HandleFunc("GET /api/mystery/new", middleware.EnsurePlayer(middleware.RateLimit(guessHandler.NewMystery)))
	mux.HandleFunc("GET /api/riddle/new", middleware.EnsurePlayer(middleware.RateLimit(guessHandler.NewRiddle)))
	mux.HandleFunc("POST /api/guess", middleware.EnsurePlayer(guessHandler.CheckGuess))
	mux.HandleFunc("GET /api/catalog", learnHandler.Catalog)

	// Speech
	mux.HandleFunc("GET /api/audio", middleware.RateLimit(audioHandler.Speak))

	// Grown-ups area, behind the PIN gate
	mux.HandleFunc("GET /grownups/pin", parentHandler.ShowPIN)
	mux.HandleFunc("POST /grownups/pin", middleware.RateLimit(parentHandler.VerifyPIN))
	mux.HandleFunc("POST /grownups/logout", parentHandler.Logout)
	mux.HandleFunc("GET /grownups", middleware.RequireParent(parentHandler.Dashboard))
	mux.HandleFunc("POST /grownups/pin/change", middleware.RequireParent(parentHandler.ChangePIN))
	mux.HandleFunc("POST /grownups/backup-email", middleware.RequireParent(parentHandler.SetBackupEmail))
	mux.HandleFunc("GET /grownups/backup", middleware.RequireParent(parentHandler.DownloadBackup))
	mux.HandleFunc("POST /grownups/backup/email", middleware.RequireParent(parentHandler.EmailBackup))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

// warmAudioCache pre-generates speech for the catalog and the fixed phrases
// so first plays don't wait on the TTS fetch
func warmAudioCache(tts *audio.TTSService, foodRepo *repository.FoodRepository) {
	phrases := []string{"Nice!", service.PhraseCorrect, service.PhraseTryAgain, service.PhraseRiddleTryAgain}

	items, err := foodRepo.GetAll()
	if err != nil {
		log.Printf("Warning: Failed to load catalog for audio warmup: %v", err)
	} else {
		for _, item := range items {
			phrases = append(phrases, item.Name)
		}
	}

	tts.WarmCache(phrases)
}

func loadTemplates(templatesPath string) (*template.Template, error) {
	pattern := filepath.Join(templatesPath, "*.tmpl")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesPath)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}

	return template.New("").Funcs(funcMap).ParseFiles(files...)
}
