package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string // sqlite (default), postgres, mysql
	DatabasePath    string // sqlite only
	DatabaseURL     string // postgres/mysql
	MigrationsPath  string
	TemplatesPath   string
	StaticFilesPath string

	// Session cookies are signed JWTs; the secret must be stable across restarts
	SessionSecret   string
	SessionDuration time.Duration

	// Gemini text generation
	GeminiAPIKey string
	GeminiModel  string

	// Parent gate PIN, hashed and stored in settings on first start
	ParentPIN string

	// Backup email delivery via SES (disabled when FromEmail is empty)
	AWSRegion    string
	SESFromEmail string
	BackupEmail  string

	// Per-IP rate limit for the TTS and generation endpoints
	GenerateRateLimit  int
	GenerateRateWindow time.Duration
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./foodiefriends.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),

		SessionSecret:   getEnv("SESSION_SECRET", "dev-secret-change-me"),
		SessionDuration: 30 * 24 * time.Hour,

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		ParentPIN: getEnv("PARENT_PIN", "0000"),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		BackupEmail:  getEnv("BACKUP_EMAIL", ""),

		GenerateRateLimit:  getEnvInt("GENERATE_RATE_LIMIT", 30),
		GenerateRateWindow: time.Minute,
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
