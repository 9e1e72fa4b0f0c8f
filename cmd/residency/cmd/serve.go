package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/residency/internal/service/server"
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	options := new(server.Options)

	serveCmd := &cobra.Command{
		Use:   "serve [listen-address]",
		Short: "Run the gRPC evaluation server.",
		Long: `Starts the gRPC server that evaluates crossing logs for clients.

Only the port from the configured server address is used for listening (e.g., :50151).
Requests without crossings are evaluated against the server's own crossing log.
When a metrics address is configured, Prometheus metrics are served on /metrics.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			if len(args) > 0 {
				options.ListenAddress = args[0]
			}

			options.ConfigPath = configPath
			options.LogFile = logFile

			return server.Run(ctx, options)
		},
	}

	serveCmd.Flags().StringVar(&options.MetricsAddress, "metrics-addr", "", "Prometheus listen address (overrides configuration)")

	rootCmd.AddCommand(serveCmd)
}
