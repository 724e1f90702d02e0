package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server configuration
type Config struct {
	Port           int
	Extractor      string // "gemini" or "rules"
	GeminiAPIKey   string
	GeminiModel    string
	ExtractTimeout time.Duration // per-turn budget for the extraction call
	RedisURL       string
	RedisPassword  string
	MaxSessions    int
	SessionTimeout time.Duration
	AllowedOrigins []string
	DBPath         string // SQLite archive of emitted configurations
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	config := &Config{
		Port:           8080,
		Extractor:      "gemini",
		GeminiModel:    "models/gemini-2.5-flash",
		ExtractTimeout: 30 * time.Second,
		RedisURL:       "localhost:6379",
		RedisPassword:  "",
		MaxSessions:    100,
		SessionTimeout: 30 * time.Minute,
		AllowedOrigins: []string{"*"},
		DBPath:         "onboard.db",
	}

	// Optional: EXTRACTOR ("gemini" or "rules")
	if extractor := os.Getenv("EXTRACTOR"); extractor != "" {
		switch extractor {
		case "gemini", "rules":
			config.Extractor = extractor
		default:
			return nil, fmt.Errorf("invalid EXTRACTOR: must be 'gemini' or 'rules'")
		}
	}

	// GEMINI_API_KEY is required unless the rule-based extractor is selected
	config.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if config.GeminiAPIKey == "" && config.Extractor == "gemini" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required (or set EXTRACTOR=rules)")
	}

	// Optional: GEMINI_MODEL
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.GeminiModel = model
	}

	// Optional: PORT
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		config.Port = p
	}

	// Optional: EXTRACT_TIMEOUT (in seconds)
	if timeout := os.Getenv("EXTRACT_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid EXTRACT_TIMEOUT: %w", err)
		}
		config.ExtractTimeout = time.Duration(t) * time.Second
	}

	// Optional: REDIS_URL
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		config.RedisURL = redisURL
	}

	// Optional: REDIS_PASSWORD
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.RedisPassword = redisPassword
	}

	// Optional: MAX_SESSIONS
	if maxSessions := os.Getenv("MAX_SESSIONS"); maxSessions != "" {
		m, err := strconv.Atoi(maxSessions)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_SESSIONS: %w", err)
		}
		config.MaxSessions = m
	}

	// Optional: SESSION_TIMEOUT (in minutes)
	if timeout := os.Getenv("SESSION_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TIMEOUT: %w", err)
		}
		config.SessionTimeout = time.Duration(t) * time.Minute
	}

	// Optional: ALLOWED_ORIGINS (comma-separated)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	// Optional: DB_PATH
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DBPath = dbPath
	}

	return config, nil
}
