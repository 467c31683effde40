// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/sheets"
)

// Config holds the application configuration.
type Config struct {
	Location           *time.Location
	SourceFile         string
	SourceURL          string
	SheetID            string
	SheetGID           string
	DatabasePath       string
	ThemePath          string
	LogPath            string
	LogLevel           string
	FetchTimeout       time.Duration
	RefreshInterval    time.Duration
	RefreshMinInterval time.Duration
	LoadRetention      time.Duration
	PageSize           int
	CostAlertThreshold float64
}

// Default values
const (
	defaultFetchTimeout       = 20 * time.Second
	defaultRefreshInterval    = 5 * time.Minute
	defaultRefreshMinInterval = 2 * time.Second
	defaultLoadRetention      = 30 * 24 * time.Hour
	appDirName                = "llm-analytics-tui"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	loc, err := loadLocation(os.Getenv("TIMEZONE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Location:           loc,
		SourceFile:         getEnvString("SOURCE_FILE", ""),
		SourceURL:          getEnvString("SOURCE_URL", ""),
		SheetID:            getEnvString("SHEET_ID", ""),
		SheetGID:           getEnvString("SHEET_GID", ""),
		DatabasePath:       getEnvString("DATABASE_PATH", defaultPath("loads.db")),
		ThemePath:          getEnvString("THEME_PATH", ""),
		LogPath:            getEnvString("LOG_PATH", defaultPath("lat.log")),
		LogLevel:           getEnvString("LOG_LEVEL", "info"),
		FetchTimeout:       getEnvDuration("FETCH_TIMEOUT", defaultFetchTimeout),
		RefreshInterval:    getEnvDuration("REFRESH_INTERVAL", defaultRefreshInterval),
		RefreshMinInterval: getEnvDuration("REFRESH_MIN_INTERVAL", defaultRefreshMinInterval),
		LoadRetention:      getEnvDuration("LOAD_RETENTION", defaultLoadRetention),
		PageSize:           models.SnapPageSize(getEnvInt("PAGE_SIZE", models.DefaultPageSize)),
		CostAlertThreshold: getEnvFloat("COST_ALERT_THRESHOLD", 0),
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SourceKind identifies where rows are loaded from.
type SourceKind string

// Source kinds in precedence order.
const (
	SourceNone  SourceKind = ""
	SourceFile  SourceKind = "file"
	SourceURL   SourceKind = "url"
	SourceSheet SourceKind = "sheet"
)

// Source returns the configured data source. A file wins over an explicit
// URL, which wins over a sheet ID.
func (c *Config) Source() (SourceKind, string) {
	switch {
	case c.SourceFile != "":
		return SourceFile, c.SourceFile
	case c.SourceURL != "":
		return SourceURL, c.SourceURL
	case c.SheetID != "":
		return SourceSheet, sheets.QueryURL(c.SheetID, c.SheetGID)
	default:
		return SourceNone, ""
	}
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
			filepath.Join(home, ".llm-analytics", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// defaultPath returns name inside the application config directory.
func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".config", appDirName, name)
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
