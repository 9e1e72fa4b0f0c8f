package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/residency/internal/service/watch"
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	options := new(watch.Options)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-evaluate the log on a schedule.",
		Long: `Evaluates the crossing log right away and then on every tick of the cron
schedule from the configuration, logging the verdict and warning when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			options.ConfigPath = configPath
			options.LogFile = logFile

			return watch.Run(ctx, options)
		},
	}

	watchCmd.Flags().StringVar(&options.Schedule, "schedule", "", "cron expression (overrides configuration)")

	rootCmd.AddCommand(watchCmd)
}
