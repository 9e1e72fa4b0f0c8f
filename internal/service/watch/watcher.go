package watch

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/residency/internal/domain/residency"
	"github.com/oshokin/residency/internal/logger"
	"github.com/oshokin/residency/internal/repository/crossings"
	"github.com/oshokin/residency/internal/service/common"
)

// watcher evaluates the log on every tick and remembers the last verdict.
type watcher struct {
	// repo is the crossing log.
	repo crossings.Repository
	// country is used in log messages.
	country string
	// now returns the current time.
	now func() time.Time

	// mu guards last.
	mu sync.Mutex
	// last is the verdict of the previous successful tick.
	last *residency.Result
}

// newWatcher creates a watcher over repo.
func newWatcher(repo crossings.Repository, country string, now func() time.Time) *watcher {
	if now == nil {
		now = time.Now
	}

	return &watcher{
		repo:    repo,
		country: country,
		now:     now,
	}
}

// tick evaluates the log once. It reports whether the verdict flipped.
func (w *watcher) tick(ctx context.Context) (*residency.Result, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	events, err := common.LoadCrossings(ctx, w.repo)
	if err != nil {
		return nil, false, err
	}

	result, err := residency.Evaluate(events, w.now())
	if err != nil {
		return nil, false, err
	}

	changed := w.last != nil && w.last.IsResident != result.IsResident
	w.last = result

	kvs := []any{
		"today", result.Today.Format(time.DateOnly),
		"days", result.Days,
		"is_resident", result.IsResident,
	}

	if result.IsResident {
		kvs = append(kvs, "expires_at", result.ExpiresAt.Format(time.DateOnly))
	}

	switch {
	case changed && result.IsResident:
		logger.WarnKV(ctx, "Became a tax resident of "+w.country, kvs...)
	case changed:
		logger.WarnKV(ctx, "No longer a tax resident of "+w.country, kvs...)
	default:
		logger.InfoKV(ctx, "Residency re-evaluated", kvs...)
	}

	return result, changed, nil
}
