package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string // TELEGRAM_TOKEN
	BackendURL     string // BACKEND_URL, trailing slash included
	ChartURL       string // CHART_URL, external chart renderer
	HistoryDSN     string // HISTORY_DSN, optional Postgres history store
	MigrationsPath string // MIGRATIONS_PATH
	Environment    string // ENV
}

// Load reads configuration from a .env file if present, then from the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		BackendURL:     os.Getenv("BACKEND_URL"),
		ChartURL:       os.Getenv("CHART_URL"),
		HistoryDSN:     os.Getenv("HISTORY_DSN"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		Environment:    os.Getenv("ENV"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required but not set")
	}

	return cfg, nil
}
