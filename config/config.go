package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Dosada05/maze-tournament/maze"
	"github.com/Dosada05/maze-tournament/models"
)

// Config holds every runtime setting of the service.
type Config struct {
	ServerPort int

	SnapshotPath         string
	HistoryCapacity      int
	HistoryRetention     time.Duration
	HistoryPruneInterval time.Duration

	DefaultMazeSize int
	PathStrategy    models.PathStrategy

	CORSAllowedOrigins []string
	LogLevel           slog.Level

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// R2Enabled reports whether the snapshot mirror is configured.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != ""
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		SnapshotPath:       getEnv("SNAPSHOT_PATH", "data/bracket.json"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		R2AccountID:        os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:    os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	// Server
	var err error
	if cfg.ServerPort, err = getEnvInt("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	// Run history
	if cfg.HistoryCapacity, err = getEnvInt("HISTORY_CAPACITY", 100); err != nil {
		return nil, err
	}
	if cfg.HistoryCapacity <= 0 {
		return nil, fmt.Errorf("HISTORY_CAPACITY must be positive, got %d", cfg.HistoryCapacity)
	}
	if cfg.HistoryRetention, err = getEnvDuration("HISTORY_RETENTION", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.HistoryPruneInterval, err = getEnvDuration("HISTORY_PRUNE_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.HistoryRetention <= 0 || cfg.HistoryPruneInterval <= 0 {
		return nil, fmt.Errorf("HISTORY_RETENTION and HISTORY_PRUNE_INTERVAL must be positive")
	}

	// Maze defaults
	if cfg.DefaultMazeSize, err = getEnvInt("DEFAULT_MAZE_SIZE", 10); err != nil {
		return nil, err
	}
	if err := maze.ValidateSize(cfg.DefaultMazeSize); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_MAZE_SIZE: %w", err)
	}
	if cfg.PathStrategy, err = maze.ParseStrategy(os.Getenv("PATH_STRATEGY")); err != nil {
		return nil, fmt.Errorf("invalid PATH_STRATEGY: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	// Cloudflare R2 mirror
	if err := cfg.validateR2(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateR2 accepts either no R2 settings or all of them.
func (c *Config) validateR2() error {
	fields := map[string]string{
		"R2_ACCOUNT_ID":        c.R2AccountID,
		"R2_ACCESS_KEY_ID":     c.R2AccessKeyID,
		"R2_SECRET_ACCESS_KEY": c.R2SecretAccessKey,
		"R2_BUCKET_NAME":       c.R2BucketName,
		"R2_PUBLIC_BASE_URL":   c.R2PublicBaseURL,
	}
	var set, missing []string
	for name, v := range fields {
		if v == "" {
			missing = append(missing, name)
		} else {
			set = append(set, name)
		}
	}
	if len(set) > 0 && len(missing) > 0 {
		return fmt.Errorf("incomplete R2 configuration: %d of %d variables set", len(set), len(fields))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
