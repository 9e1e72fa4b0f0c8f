package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/residency/internal/logger"
)

// Config holds the settings shared by the residency commands.
type Config struct {
	// LogFile is the path to the crossing log.
	LogFile string `yaml:"log_file"`
	// DateLayout is the Go time layout of record dates in the crossing log.
	DateLayout string `yaml:"date_layout"`
	// Country is the display name of the jurisdiction.
	Country string `yaml:"country"`
	// ServerAddress is the gRPC address used by serve and query.
	ServerAddress string `yaml:"server_addr"`
	// MetricsAddress is the Prometheus listen address; empty disables metrics.
	MetricsAddress string `yaml:"metrics_addr,omitempty"`
	// WatchSchedule is the cron expression used by watch.
	WatchSchedule string `yaml:"watch_schedule"`
	// Timeout is the duration for RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the zap level name.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "residency-settings.yaml"

	// DefaultLogFilename is the default filename of the crossing log.
	DefaultLogFilename = "residency-crossings.txt"

	// DefaultDateLayout reads dates as DD.MM.YY.
	DefaultDateLayout = "02.01.06"

	// DefaultCountry is the jurisdiction shown in reports.
	DefaultCountry = "Russia"

	// DefaultServerAddress is the gRPC address used when none is configured.
	DefaultServerAddress = "127.0.0.1:50151"

	// DefaultWatchSchedule runs watch every morning.
	DefaultWatchSchedule = "0 9 * * *"

	// DefaultTimeout is the default duration for RPC calls.
	DefaultTimeout = 5 * time.Second

	// DefaultFilePermissions is the permission for files written by the tool.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errDateLayoutRoundTrip is returned when the layout loses the day, month or year.
	errDateLayoutRoundTrip = errors.New("date layout must keep day, month and year")
	// errUnknownLogLevel is returned for level names zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns settings with every field set to its default.
func Default() *Config {
	return &Config{
		LogFile:       DefaultLogFilename,
		DateLayout:    DefaultDateLayout,
		Country:       DefaultCountry,
		ServerAddress: DefaultServerAddress,
		WatchSchedule: DefaultWatchSchedule,
		Timeout:       DefaultTimeout,
		LogLevel:      "info",
	}
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Logger().Debugw("Settings file not found, using defaults", "path", path)

		return Default(), nil
	}

	return cfg, err
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults for empty fields and checks the rest.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	applyDefaults(settings)

	if err := validateDateLayout(settings.DateLayout); err != nil {
		return err
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	if settings.MetricsAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.MetricsAddress); err != nil {
			return fmt.Errorf("invalid metrics address: %w", err)
		}
	}

	if _, err := cron.ParseStandard(settings.WatchSchedule); err != nil {
		return fmt.Errorf("invalid watch schedule: %w", err)
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	return nil
}

// applyDefaults sets every empty field to its default.
func applyDefaults(settings *Config) {
	defaults := Default()

	if settings.LogFile == "" {
		settings.LogFile = defaults.LogFile
	}

	if settings.DateLayout == "" {
		settings.DateLayout = defaults.DateLayout
	}

	if settings.Country == "" {
		settings.Country = defaults.Country
	}

	if settings.ServerAddress == "" {
		settings.ServerAddress = defaults.ServerAddress
	}

	if settings.WatchSchedule == "" {
		settings.WatchSchedule = defaults.WatchSchedule
	}

	if settings.Timeout <= 0 {
		settings.Timeout = defaults.Timeout
	}

	if settings.LogLevel == "" {
		settings.LogLevel = defaults.LogLevel
	}
}

// validateDateLayout checks that a date survives formatting and parsing with layout.
func validateDateLayout(layout string) error {
	probe := time.Date(2021, time.December, 27, 0, 0, 0, 0, time.UTC)

	parsed, err := time.Parse(layout, probe.Format(layout))
	if err != nil {
		return fmt.Errorf("invalid date layout %q: %w", layout, err)
	}

	if !parsed.Equal(probe) {
		return fmt.Errorf("%w: %q", errDateLayoutRoundTrip, layout)
	}

	return nil
}
