// Package config loads runtime settings from the environment and profile files.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"mockgram/internal/mockdata"
	"mockgram/pkg/log"
)

// Config holds the server settings.
type Config struct {
	Port               string
	LogLevel           log.Level
	ViewTTL            time.Duration
	PostCount          int
	Seed               uint64
	Seeded             bool // false means mock data is drawn from a random seed
	ActionRateLimit    int
	ActionRateWindow   time.Duration
	PlaceholderMaxSize int
	ProfilePath        string
}

// Defaults returns the configuration used when no variables are set.
func Defaults() Config {
	return Config{
		Port:               "3000",
		LogLevel:           log.Info,
		ViewTTL:            30 * time.Minute,
		PostCount:          mockdata.DefaultPostCount,
		ActionRateLimit:    120,
		ActionRateWindow:   time.Minute,
		PlaceholderMaxSize: 2000,
		ProfilePath:        "config/profile.yaml",
	}
}

// Load reads an optional .env file, then overlays environment variables on the defaults.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "loading .env")
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (Config, error) {
	cfg := Defaults()

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return Config{}, errors.Wrapf(err, "LOG_LEVEL %q", level)
		}
		cfg.LogLevel = parsed
	}

	var err error
	if cfg.ViewTTL, err = minutesEnv("VIEW_TTL_MINUTES", cfg.ViewTTL); err != nil {
		return Config{}, err
	}
	if cfg.PostCount, err = intEnv("POST_COUNT", cfg.PostCount, 0); err != nil {
		return Config{}, err
	}
	if cfg.ActionRateLimit, err = intEnv("ACTION_RATE_LIMIT", cfg.ActionRateLimit, 1); err != nil {
		return Config{}, err
	}
	if cfg.PlaceholderMaxSize, err = intEnv("PLACEHOLDER_MAX_SIZE", cfg.PlaceholderMaxSize, 1); err != nil {
		return Config{}, err
	}

	if seed := os.Getenv("MOCK_SEED"); seed != "" {
		cfg.Seed, err = strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return Config{}, errors.Wrapf(err, "MOCK_SEED %q", seed)
		}
		cfg.Seeded = true
	}

	if path, ok := os.LookupEnv("PROFILE_CONFIG"); ok {
		cfg.ProfilePath = path
	}

	return cfg, nil
}

// Generator returns the mock data generator described by the seed settings.
func (c Config) Generator() *mockdata.Generator {
	if c.Seeded {
		return mockdata.NewSeededGenerator(c.Seed)
	}
	return mockdata.NewRandomGenerator()
}

func intEnv(key string, def, min int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "%s %q", key, raw)
	}
	if n < min {
		return 0, errors.Errorf("%s must be at least %d, got %d", key, min, n)
	}
	return n, nil
}

func minutesEnv(key string, def time.Duration) (time.Duration, error) {
	n, err := intEnv(key, int(def/time.Minute), 1)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Minute, nil
}
