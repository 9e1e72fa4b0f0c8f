package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/residency/internal/service/check"
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	options := new(check.Options)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate the crossing log.",
		Long: `Prints the crossings in date order, the number of days spent in the country
during the last 12 months and whether that makes you a tax resident.
When you are a resident, also prints the projected expiration date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			options.ConfigPath = configPath
			options.LogFile = logFile
			options.Out = cmd.OutOrStdout()

			return check.Run(ctx, options)
		},
	}

	checkCmd.Flags().StringVar(&options.Today, "today", "", "evaluation date as YYYY-MM-DD (default: current date)")
	checkCmd.Flags().BoolVar(&options.JSON, "json", false, "print the result as JSON")

	rootCmd.AddCommand(checkCmd)
}
