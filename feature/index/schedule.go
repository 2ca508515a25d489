package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler triggers rebuilds on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler registers trigger under the standard five-field cron expression.
// A tick that finds a rebuild already running is skipped.
func NewScheduler(expr string, trigger func(ctx context.Context) (string, error), logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		runID, err := trigger(context.Background())
		switch {
		case errors.Is(err, ErrRebuildInProgress):
			logger.Info("Scheduled rebuild skipped, another rebuild is running")
		case err != nil:
			logger.Error("Scheduled rebuild failed to start", zap.Error(err))
		default:
			logger.Info("Scheduled rebuild started", zap.String("run_id", runID))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid rebuild schedule %q: %w", expr, err)
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

// Start runs the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running tick to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Entries reports how many schedules are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
