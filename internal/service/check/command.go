package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/domain/residency"
	"github.com/oshokin/residency/internal/logger"
	"github.com/oshokin/residency/internal/service/common"
)

// Options controls a single evaluation of the local crossing log.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// LogFile overrides the crossing log path from the configuration.
	LogFile string
	// Today is the evaluation date as YYYY-MM-DD; empty means the current date.
	Today string
	// JSON prints the result as JSON instead of the text report.
	JSON bool
	// Out receives the report; defaults to stdout.
	Out io.Writer
}

// Run loads the crossing log, evaluates it and prints the report.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "residency-check")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	today, err := common.ParseToday(opts.Today, time.Now())
	if err != nil {
		return err
	}

	repo := common.OpenLog(cfg, opts.LogFile)
	ctx = logger.WithKV(ctx, "log_file", repo.Path())

	events, err := common.LoadCrossings(ctx, repo)
	if err != nil {
		return err
	}

	result, err := residency.Evaluate(events, today)
	if err != nil {
		logger.ErrorKV(ctx, "Evaluation failed", "error", err)

		return fmt.Errorf("evaluate %s: %w", repo.Path(), err)
	}

	logger.InfoKV(ctx, "Crossing log evaluated",
		"today", result.Today.Format(time.DateOnly),
		"window", result.Window.String(),
		"days", result.Days,
		"is_resident", result.IsResident,
	)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.JSON {
		return common.WriteJSON(out, result)
	}

	return common.WriteReport(out, cfg.Country, events, result)
}
