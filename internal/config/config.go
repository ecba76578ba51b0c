package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	appDir          = "habit_tracker"
	configFileName  = "config.toml"
	credentialsName = "credentials.json"
	tokenName       = "token.json"
	journalName     = "journal.db"
	defaultTimezone = "Asia/Jakarta"
	defaultLogLevel = "warn"
	defaultRedirect = "http://localhost:8080/callback"
)

type Config struct {
	SpreadsheetID    string `toml:"spreadsheet_id"`
	SheetName        string `toml:"sheet_name"`
	Timezone         string `toml:"timezone"`
	LogLevel         string `toml:"log_level"`
	JournalPath      string `toml:"journal_path"`
	CredentialsPath  string `toml:"credentials_path"`
	TokenPath        string `toml:"token_path"`
	OAuthRedirectURL string `toml:"oauth_redirect_url"`

	// Path the configuration was read from.
	Path string `toml:"-"`
}

// Dir returns the per-user directory holding config, credentials and journal.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to locate user config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// Load reads config.toml from the per-user config directory, or from
// HABIT_TRACKER_CONFIG when set, then applies environment overrides.
func Load() (*Config, error) {
	path := os.Getenv("HABIT_TRACKER_CONFIG")
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, configFileName)
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg := &Config{Path: path}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("unable to parse config file %s: %w", path, err)
	}

	applyEnv(cfg)

	dir := filepath.Dir(path)
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = filepath.Join(dir, credentialsName)
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = filepath.Join(dir, tokenName)
	}
	if cfg.JournalPath == "" {
		cfg.JournalPath = filepath.Join(dir, journalName)
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.OAuthRedirectURL == "" {
		cfg.OAuthRedirectURL = defaultRedirect
	}

	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet_id is required. Set it in %s or export HABIT_TRACKER_SPREADSHEET_ID", path)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"HABIT_TRACKER_SPREADSHEET_ID", &cfg.SpreadsheetID},
		{"HABIT_TRACKER_CREDENTIALS_PATH", &cfg.CredentialsPath},
		{"HABIT_TRACKER_TOKEN_PATH", &cfg.TokenPath},
		{"HABIT_TRACKER_OAUTH_REDIRECT_URL", &cfg.OAuthRedirectURL},
		{"HABIT_TRACKER_LOG_LEVEL", &cfg.LogLevel},
		{"HABIT_TRACKER_TIMEZONE", &cfg.Timezone},
		{"HABIT_TRACKER_JOURNAL_PATH", &cfg.JournalPath},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
}

// Location returns the configured time zone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ApplyYear points the tracker at the sheet named after the current year.
func (c *Config) ApplyYear(now time.Time) {
	c.SheetName = strconv.Itoa(now.In(c.Location()).Year())
}
