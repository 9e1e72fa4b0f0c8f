package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/residency/internal/service/record"
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:     "add <date> <in|out>",
		Short:   "Append a border crossing to the log.",
		Long:    `Appends a crossing to the log. The date uses the layout from the configuration (DD.MM.YY by default). The record is rejected if the log would contain two entries or two exits in a row.`,
		Example: "  residency add 14.03.22 out",
		Args:    cobra.ExactArgs(2), //nolint:mnd // Date and kind.
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return record.Run(ctx, &record.Options{
				ConfigPath: configPath,
				LogFile:    logFile,
				Date:       args[0],
				Kind:       args[1],
			})
		},
	})
}
