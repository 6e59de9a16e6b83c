package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // github.com/glebarez/go-sqlite
)

type Config struct {
	DBDriver        string
	DBPath          string
	ServerPort      string
	LogLevel        string
	RankingCacheTTL time.Duration
	TBAAPIKey       string
	TBABaseURL      string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cacheTTL, err := time.ParseDuration(getEnv("RANKING_CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RANKING_CACHE_TTL: %w", err)
	}

	cfg := &Config{
		DBDriver:        getEnv("DB_DRIVER", DriverCGO),
		DBPath:          getEnv("DB_PATH", "roboscout.db"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RankingCacheTTL: cacheTTL,
		TBAAPIKey:       getEnv("TBA_API_KEY", ""),
		TBABaseURL:      getEnv("TBA_BASE_URL", "https://www.thebluealliance.com/api/v3"),
	}

	if cfg.DBDriver != DriverCGO && cfg.DBDriver != DriverPureGo {
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverCGO, DriverPureGo, cfg.DBDriver)
	}

	if cfg.TBAAPIKey == "" {
		logger.Warn().Msg("TBA_API_KEY not set, event team sync is disabled")
	}

	logger.Info().
		Str("db_driver", cfg.DBDriver).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("ranking_cache_ttl", cfg.RankingCacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
