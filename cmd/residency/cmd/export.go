package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/residency/internal/service/export"
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	options := new(export.Options)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export stays as an iCalendar file.",
		Long:  `Pairs every entry with its exit and writes one all-day calendar event per stay. A stay without an exit ends today.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			options.ConfigPath = configPath
			options.LogFile = logFile
			options.Out = cmd.OutOrStdout()

			return export.Run(ctx, options)
		},
	}

	exportCmd.Flags().StringVarP(&options.OutFile, "out", "o", "", "write the calendar to this file instead of stdout")
	exportCmd.Flags().StringVar(&options.Today, "today", "", "date that closes an ongoing stay, YYYY-MM-DD")

	rootCmd.AddCommand(exportCmd)
}
