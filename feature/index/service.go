package index

import (
	"context"

	"go.uber.org/zap"
)

// Service coordinates rebuilds, publication and status reporting.
type Service struct {
	builder   *Builder
	status    *StatusStore
	publisher *Publisher
	publish   bool
	logger    *zap.Logger
}

// NewService creates an index service. publisher may be nil when publication is not
// configured; publish enables it for triggered rebuilds.
func NewService(builder *Builder, status *StatusStore, publisher *Publisher, publish bool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		builder:   builder,
		status:    status,
		publisher: publisher,
		publish:   publish,
		logger:    logger,
	}
}

// StatusView is the persisted status combined with the live builder progress.
type StatusView struct {
	Status   `yaml:",inline"`
	Progress Progress `json:"progress" yaml:"progress"`
}

// Rebuild rebuilds the index synchronously and optionally publishes it.
// A failed publication does not fail the rebuild; it is reported in the Report.
func (s *Service) Rebuild(ctx context.Context, publish bool) (*Report, error) {
	report, err := s.builder.Rebuild(ctx)
	if err != nil {
		return nil, err
	}
	if publish {
		s.publishReport(ctx, report)
	}
	return report, nil
}

// Trigger starts a background rebuild and returns its run id.
func (s *Service) Trigger(ctx context.Context) (string, error) {
	return s.builder.Start(ctx, func(report *Report, err error) {
		if err == nil && s.publish {
			s.publishReport(ctx, report)
		}
	})
}

// Status returns the persisted status and live progress.
func (s *Service) Status(ctx context.Context) (StatusView, error) {
	view := StatusView{Progress: s.builder.Progress()}
	if s.status == nil {
		view.State = StateIdle
		return view, nil
	}
	st, err := s.status.Get(ctx)
	if err != nil {
		return StatusView{}, err
	}
	view.Status = st
	return view, nil
}

func (s *Service) publishReport(ctx context.Context, report *Report) {
	if s.publisher == nil {
		report.PublishError = "publication is not configured"
		return
	}
	if _, err := s.publisher.Publish(ctx, report.RunID); err != nil {
		s.logger.Error("Index publication failed", zap.String("run_id", report.RunID), zap.Error(err))
		report.PublishError = err.Error()
		return
	}
	report.Published = s.publisher.Object()
}
