package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/residency/internal/service/query"
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	options := new(query.Options)

	queryCmd := &cobra.Command{
		Use:   "query [server-address]",
		Short: "Evaluate the crossing log on a remote server.",
		Long:  `Sends the local crossing log to a residency server and prints its verdict. With --server-log the server evaluates its own log instead.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			if len(args) > 0 {
				options.ServerAddress = args[0]
			}

			options.ConfigPath = configPath
			options.LogFile = logFile
			options.Out = cmd.OutOrStdout()

			return query.Run(ctx, options)
		},
	}

	queryCmd.Flags().StringVar(&options.Today, "today", "", "evaluation date as YYYY-MM-DD (default: server's current date)")
	queryCmd.Flags().BoolVar(&options.UseServerLog, "server-log", false, "evaluate the server's crossing log")
	queryCmd.Flags().BoolVar(&options.JSON, "json", false, "print the result as JSON")

	rootCmd.AddCommand(queryCmd)
}
