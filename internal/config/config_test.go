package config

import (
	"testing"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		value        string
		defaultValue string
		want         string
	}{
		{
			name:         "set variable",
			key:          "FOODIE_TEST_VAR",
			value:        "custom",
			defaultValue: "fallback",
			want:         "custom",
		},
		{
			name:         "unset variable uses default",
			key:          "FOODIE_TEST_UNSET",
			value:        "",
			defaultValue: "fallback",
			want:         "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			result := getEnv(tt.key, tt.defaultValue)
			if result != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, result, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue int
		want         int
	}{
		{
			name:         "valid integer",
			value:        "15",
			defaultValue: 30,
			want:         15,
		},
		{
			name:         "invalid integer uses default",
			value:        "lots",
			defaultValue: 30,
			want:         30,
		},
		{
			name:         "unset uses default",
			value:        "",
			defaultValue: 30,
			want:         30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("FOODIE_TEST_INT", tt.value)
			}
			result := getEnvInt("FOODIE_TEST_INT", tt.defaultValue)
			if result != tt.want {
				t.Errorf("getEnvInt() = %d, want %d", result, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	cfg := Load()

	if cfg.ServerPort == "" {
		t.Error("ServerPort should have a default")
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite by default", cfg.DatabaseType)
	}
	if cfg.GeminiModel == "" {
		t.Error("GeminiModel should have a default")
	}
	if cfg.GenerateRateLimit <= 0 {
		t.Error("GenerateRateLimit should be positive")
	}
}
