package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/domain/residency"
	"github.com/oshokin/residency/internal/logger"
	"github.com/oshokin/residency/internal/service/common"
)

// Options controls the calendar export.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// LogFile overrides the crossing log path from the configuration.
	LogFile string
	// Today closes an ongoing stay; empty means the current date.
	Today string
	// OutFile is the .ics destination; empty writes to Out.
	OutFile string
	// Out receives the calendar when OutFile is empty; defaults to stdout.
	Out io.Writer
}

// Run pairs the crossing log into stays and writes them as iCalendar.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "residency-export")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	now := time.Now()

	today, err := common.ParseToday(opts.Today, now)
	if err != nil {
		return err
	}

	events, err := common.LoadCrossings(ctx, common.OpenLog(cfg, opts.LogFile))
	if err != nil {
		return err
	}

	stays, err := residency.Stays(events, today)
	if err != nil {
		return fmt.Errorf("pair crossings: %w", err)
	}

	calendar := BuildCalendar(stays, cfg.Country, now.UTC())

	if opts.OutFile != "" {
		if err = os.WriteFile(filepath.Clean(opts.OutFile), []byte(calendar), config.DefaultFilePermissions); err != nil {
			return fmt.Errorf("write calendar: %w", err)
		}

		logger.InfoKV(ctx, "Calendar exported", "out_file", opts.OutFile, "stays", len(stays))

		return nil
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if _, err = io.WriteString(out, calendar); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}

	return nil
}
