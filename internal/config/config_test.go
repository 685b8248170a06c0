package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mockgram/internal/config"
	"mockgram/pkg/log"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "VIEW_TTL_MINUTES", "POST_COUNT", "MOCK_SEED",
		"ACTION_RATE_LIMIT", "PLACEHOLDER_MAX_SIZE", "PROFILE_CONFIG",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnv_NoVariables_ReturnsDefaults(t *testing.T) {
	// Arrange
	clearEnv(t)

	// Act
	cfg, err := config.FromEnv()

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != config.Defaults() {
		t.Errorf("got %+v, want defaults %+v", cfg, config.Defaults())
	}
	if cfg.Port != "3000" || cfg.PostCount != 20 || cfg.ViewTTL != 30*time.Minute {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnv_OverridesFromEnvironment(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("VIEW_TTL_MINUTES", "5")
	t.Setenv("POST_COUNT", "12")
	t.Setenv("MOCK_SEED", "99")
	t.Setenv("ACTION_RATE_LIMIT", "3")
	t.Setenv("PROFILE_CONFIG", "")

	// Act
	cfg, err := config.FromEnv()

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port: got %q", cfg.Port)
	}
	if cfg.LogLevel != log.Debug {
		t.Errorf("LogLevel: got %v", cfg.LogLevel)
	}
	if cfg.ViewTTL != 5*time.Minute {
		t.Errorf("ViewTTL: got %v", cfg.ViewTTL)
	}
	if cfg.PostCount != 12 {
		t.Errorf("PostCount: got %d", cfg.PostCount)
	}
	if !cfg.Seeded || cfg.Seed != 99 {
		t.Errorf("Seed: got %d (seeded=%v)", cfg.Seed, cfg.Seeded)
	}
	if cfg.ActionRateLimit != 3 {
		t.Errorf("ActionRateLimit: got %d", cfg.ActionRateLimit)
	}
	if cfg.ProfilePath != "" {
		t.Errorf("ProfilePath: got %q, want empty", cfg.ProfilePath)
	}
}

func TestFromEnv_InvalidValues_ReturnError(t *testing.T) {
	testCases := []struct {
		key   string
		value string
	}{
		{key: "LOG_LEVEL", value: "loud"},
		{key: "VIEW_TTL_MINUTES", value: "soon"},
		{key: "VIEW_TTL_MINUTES", value: "0"},
		{key: "POST_COUNT", value: "-1"},
		{key: "MOCK_SEED", value: "-5"},
		{key: "ACTION_RATE_LIMIT", value: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := config.FromEnv(); err == nil {
				t.Errorf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_ReadsDotEnvFile(t *testing.T) {
	// Arrange
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("PORT=4321\nPOST_COUNT=7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("POST_COUNT")
	})

	// Act
	cfg, err := config.Load(envFile)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "4321" || cfg.PostCount != 7 {
		t.Errorf("got port %q posts %d, want 4321/7", cfg.Port, cfg.PostCount)
	}
}

func TestLoad_MissingDotEnv_IsNotAnError(t *testing.T) {
	clearEnv(t)

	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfig_Generator_SeededIsDeterministic(t *testing.T) {
	cfg := config.Defaults()
	cfg.Seed, cfg.Seeded = 11, true

	a := cfg.Generator().Posts(5)
	b := cfg.Generator().Posts(5)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("post %d differs: %+v vs %+v", i+1, a[i], b[i])
		}
	}
}
