//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/domain/residency"
	"github.com/oshokin/residency/internal/logger"
	"github.com/oshokin/residency/internal/repository/crossings"
)

// OpenLog returns the repository of the crossing log, preferring override over the configured path.
func OpenLog(cfg *config.Config, override string) *crossings.FileRepository {
	path := cfg.LogFile
	if override != "" {
		path = override
	}

	return crossings.NewFileRepository(path, cfg.DateLayout)
}

// LoadCrossings reads the log; a missing log is treated as empty.
func LoadCrossings(ctx context.Context, repo crossings.Repository) ([]residency.Event, error) {
	events, err := repo.Load(ctx)

	switch {
	case errors.Is(err, crossings.ErrNotFound):
		logger.Warnf(ctx, "Crossing log not found, treating it as empty")

		return []residency.Event{}, nil
	case err != nil:
		return nil, fmt.Errorf("load crossings: %w", err)
	}

	logger.DebugKV(ctx, "Crossing log loaded", "events", len(events))

	return events, nil
}

// ParseToday parses a YYYY-MM-DD evaluation date; empty means the current local date.
func ParseToday(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return residency.Day(now), nil
	}

	today, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse evaluation date: %w", err)
	}

	return residency.Day(today), nil
}
