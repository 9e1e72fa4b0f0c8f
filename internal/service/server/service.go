package server

import (
	"context"
	"time"

	"github.com/google/uuid"

	api "github.com/oshokin/residency/internal/api/grpc/residency"
	"github.com/oshokin/residency/internal/domain/residency"
	"github.com/oshokin/residency/internal/logger"
	"github.com/oshokin/residency/internal/metrics"
	"github.com/oshokin/residency/internal/repository/crossings"
	"github.com/oshokin/residency/internal/service/common"
)

// service evaluates requests against the supplied crossings or the server's own log.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// repo is the server's crossing log, used when a request carries none.
	repo crossings.Repository
	// metrics records evaluation outcomes; may be nil.
	metrics *metrics.Metrics
	// now returns the current time.
	now func() time.Time
}

// newService creates a service backed by the provided repository.
func newService(repository crossings.Repository, m *metrics.Metrics) *service {
	return &service{
		repo:    repository,
		metrics: m,
		now:     time.Now,
	}
}

// Evaluate runs a single evaluation.
func (s *service) Evaluate(ctx context.Context, req *api.EvaluateRequest) (*residency.Result, error) {
	ctx = logger.WithKV(ctx, "request_id", uuid.NewString(), "actor", req.Actor.String())

	today := req.Today
	if today.IsZero() {
		today = residency.Day(s.now())
	}

	events := req.Crossings
	if events == nil {
		if s.repo == nil {
			events = []residency.Event{}
		} else {
			loaded, err := common.LoadCrossings(ctx, s.repo)
			if err != nil {
				s.metrics.ObserveResult(nil, err)
				logger.ErrorKV(ctx, "Failed to load crossing log", "error", err)

				return nil, err
			}

			events = loaded
		}
	}

	result, err := residency.Evaluate(events, today)
	s.metrics.ObserveResult(result, err)

	if err != nil {
		logger.WarnKV(ctx, "Evaluation rejected", "events", len(events), "error", err)

		return nil, err
	}

	logger.InfoKV(ctx, "Evaluation served",
		"today", result.Today.Format(time.DateOnly),
		"events", len(events),
		"days", result.Days,
		"is_resident", result.IsResident,
	)

	return result, nil
}
