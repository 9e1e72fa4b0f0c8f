package query

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	api "github.com/oshokin/residency/internal/api/grpc/residency"
	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/domain/residency"
	"github.com/oshokin/residency/internal/logger"
	"github.com/oshokin/residency/internal/service/common"
)

// Options controls a remote evaluation.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress overrides the server address from the configuration.
	ServerAddress string
	// LogFile overrides the local crossing log path.
	LogFile string
	// Today is the evaluation date as YYYY-MM-DD; empty lets the server decide.
	Today string
	// UseServerLog asks the server to evaluate its own log instead of the local one.
	UseServerLog bool
	// JSON prints the result as JSON instead of the text report.
	JSON bool
	// Out receives the report; defaults to stdout.
	Out io.Writer
}

// Run sends the crossings to the server and prints the verdict it returns.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "residency-query")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	req := new(api.EvaluateRequest)

	if opts.Today != "" {
		if req.Today, err = common.ParseToday(opts.Today, time.Now()); err != nil {
			return err
		}
	}

	var events []residency.Event

	if !opts.UseServerLog {
		events, err = common.LoadCrossings(ctx, common.OpenLog(cfg, opts.LogFile))
		if err != nil {
			return err
		}

		req.Crossings = events
	}

	if req.Actor, err = common.DetectActor(); err != nil {
		return fmt.Errorf("detect actor: %w", err)
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Requesting remote evaluation",
		"server_address", serverAddress,
		"events", len(req.Crossings),
		"server_log", opts.UseServerLog,
	)

	result, err := client.Evaluate(ctx, req)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.JSON {
		return common.WriteJSON(out, result)
	}

	return common.WriteReport(out, cfg.Country, events, result)
}
