package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/logger"
	"github.com/oshokin/residency/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel overrides the log level from the configuration.
	logLevel string
	// logFile overrides the crossing log path from the configuration.
	logFile string

	// rootCmd represents the base command.
	rootCmd = &cobra.Command{
		Use:   "residency",
		Short: "Check tax residency against the 183-day rule.",
		Long: `Keeps a log of border crossings and tells whether you spent more than 183 days
in the country during the 12 months ending today.

The log is a text file with one record per line, for example:

  05.03.21 in
  13.06.21 out

Days are counted from each entry to the matching exit. A stay that began
before the 12-month window counts from the window start, and a stay without
an exit yet counts up to today.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

// Execute runs the residency CLI and exits with non-zero status on error.
func Execute() {
	rootCmd.AddCommand(version.NewCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging applies the log level from the flag or, failing that, from the configuration.
func setupLogging(_ *cobra.Command, _ []string) error {
	level := logLevel
	if level == "" {
		cfg, err := config.LoadOrDefault(configPath)
		if err != nil {
			return err
		}

		level = cfg.LogLevel
	}

	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}

	logger.SetLevel(parsed)

	return nil
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVarP(&logFile, "log", "l", "", "path to the crossing log (overrides configuration)")
}
