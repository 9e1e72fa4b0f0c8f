package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty settings get defaults.
	settings := new(Config)

	require.NoError(t, Validate(settings))
	require.Equal(t, Default(), settings)

	tests := []struct {
		name     string
		settings *Config
	}{
		{name: "nil"},
		{name: "bad server address", settings: &Config{ServerAddress: "bad:address"}},
		{name: "bad metrics address", settings: &Config{MetricsAddress: "nowhere"}},
		{name: "layout without year", settings: &Config{DateLayout: "02.01"}},
		{name: "bad schedule", settings: &Config{WatchSchedule: "every day"}},
		{name: "bad level", settings: &Config{LogLevel: "loud"}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Error(t, Validate(tt.settings))
		})
	}

	// ISO dates are fine too.
	require.NoError(t, Validate(&Config{DateLayout: time.DateOnly, MetricsAddress: "127.0.0.1:9100"}))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		LogFile:       filepath.Join(dir, "crossings.txt"),
		Country:       "Georgia",
		ServerAddress: "127.0.0.1:50151",
		WatchSchedule: "@daily",
		Timeout:       3 * time.Second,
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	_, err = os.Stat(path)
	require.NoError(t, err)

	require.Error(t, Save(path, nil))
}

// TestLoadOrDefault returns defaults for a missing file and errors for a broken one.
func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("timeout: [1"), DefaultFilePermissions))

	_, err = LoadOrDefault(broken)
	require.Error(t, err)
}
