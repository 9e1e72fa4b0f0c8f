package watch

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/logger"
	"github.com/oshokin/residency/internal/service/common"
)

// Options controls the watch loop.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// LogFile overrides the crossing log path from the configuration.
	LogFile string
	// Schedule overrides the cron expression from the configuration.
	Schedule string
}

// Run evaluates the log immediately and then on every scheduled tick until ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "residency-watch")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	schedule := cfg.WatchSchedule
	if opts.Schedule != "" {
		schedule = opts.Schedule
	}

	repo := common.OpenLog(cfg, opts.LogFile)
	w := newWatcher(repo, cfg.Country, nil)

	scheduler := cron.New()

	_, err = scheduler.AddFunc(schedule, func() {
		if _, _, err := w.tick(ctx); err != nil {
			logger.ErrorKV(ctx, "Scheduled evaluation failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", schedule, err)
	}

	if _, _, err = w.tick(ctx); err != nil {
		logger.ErrorKV(ctx, "Initial evaluation failed", "error", err)
	}

	logger.InfoKV(ctx, "Watching crossing log", "log_file", repo.Path(), "schedule", schedule)

	scheduler.Start()
	<-ctx.Done()

	// Wait for a running evaluation to finish.
	<-scheduler.Stop().Done()
	logger.Info(ctx, "Watch stopped")

	return nil
}
