package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultDisplayName  = "User"
	DefaultDirectoryURL = "http://kind.krx.co.kr/corpgeneral/corpList.do?method=download&searchType=13"
	DefaultPriceBaseURL = "https://api.finance.naver.com/siseJson.naver"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	DisplayName   string
	Port          string
	FavoritesFile string
	GeoFile       string
	DirectoryURL  string
	PriceBaseURL  string
	PGURL         string // optional; enables the PostgreSQL price cache
	LogLevel      log.Level
	SessionTTL    time.Duration
}

// Load reads configuration from environment variables.
// An optional .env file in the working directory is loaded first; values
// already present in the shell environment take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	level, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}

	return &Config{
		DisplayName:   getEnv("MY_NAME", DefaultDisplayName),
		Port:          getEnv("PORT", "8080"),
		FavoritesFile: getEnv("FAVORITES_FILE", "favorites.json"),
		GeoFile:       getEnv("GEO_FILE", "sido.json"),
		DirectoryURL:  getEnv("KRX_DIRECTORY_URL", DefaultDirectoryURL),
		PriceBaseURL:  getEnv("PRICE_BASE_URL", DefaultPriceBaseURL),
		PGURL:         os.Getenv("PG_URL"),
		LogLevel:      level,
		SessionTTL:    ttl,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
