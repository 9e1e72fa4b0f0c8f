package record

import (
	"context"
	"fmt"

	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/logger"
	"github.com/oshokin/residency/internal/repository/crossings"
	"github.com/oshokin/residency/internal/service/common"
)

// Options describes the crossing to record.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// LogFile overrides the crossing log path from the configuration.
	LogFile string
	// Date is the crossing date in the configured layout.
	Date string
	// Kind is "in" or "out".
	Kind string
}

// Run parses the crossing and appends it to the log unless it breaks the
// Enter/Exit alternation.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "residency-add")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	event, err := crossings.ParseRecord(opts.Date+" "+opts.Kind, cfg.DateLayout)
	if err != nil {
		return err
	}

	repo := common.OpenLog(cfg, opts.LogFile)
	if err = repo.Append(ctx, event); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Crossing recorded",
		"log_file", repo.Path(),
		"record", crossings.FormatRecord(event, cfg.DateLayout),
		"event", common.DescribeEvent(event, cfg.Country),
	)

	return nil
}
