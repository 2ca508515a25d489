package index

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Persisted rebuild states.
const (
	StateIdle     = "idle"
	StateRunning  = "running"
	StateComplete = "complete"
	StateFailed   = "failed"
)

const statusRowID = 1

// Status is the persisted outcome of the latest rebuild.
type Status struct {
	ID         uint       `gorm:"primaryKey" json:"-" yaml:"-"`
	State      string     `gorm:"size:16;not null" json:"status" yaml:"status"`
	RunID      string     `gorm:"size:36" json:"runId,omitempty" yaml:"run_id,omitempty"`
	Owner      string     `gorm:"size:255" json:"owner,omitempty" yaml:"owner,omitempty"`
	StartedAt  *time.Time `json:"startedAt,omitempty" yaml:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty" yaml:"finished_at,omitempty"`
	Error      string     `gorm:"type:text" json:"error,omitempty" yaml:"error,omitempty"`
	Printings  int64      `json:"printings" yaml:"printings"`
	Cards      int64      `json:"cards" yaml:"cards"`
	UpdatedAt  time.Time  `json:"updatedAt" yaml:"updated_at"`
}

// TableName overrides the table name used by Status.
func (Status) TableName() string {
	return "index_status"
}

// StatusStore keeps the rebuild status in the application database.
type StatusStore struct {
	db *gorm.DB
}

// NewStatusStore creates a status store over the application database.
func NewStatusStore(db *gorm.DB) *StatusStore {
	return &StatusStore{db: db}
}

// Migrate creates the status table.
func (s *StatusStore) Migrate() error {
	return s.db.AutoMigrate(&Status{})
}

// Get returns the persisted status, or an idle status when no rebuild ever ran.
func (s *StatusStore) Get(ctx context.Context) (Status, error) {
	var st Status
	err := s.db.WithContext(ctx).First(&st, statusRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Status{State: StateIdle}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to read index status: %w", err)
	}
	return st, nil
}

// Running records the start of a rebuild. Counts of the last good index are kept.
func (s *StatusStore) Running(ctx context.Context, runID string, at time.Time) error {
	prev, err := s.Get(ctx)
	if err != nil {
		return err
	}
	prev.State = StateRunning
	prev.RunID = runID
	prev.Owner = processOwner()
	prev.StartedAt = &at
	prev.FinishedAt = nil
	prev.Error = ""
	return s.save(ctx, &prev)
}

// Complete records a successful rebuild.
func (s *StatusStore) Complete(ctx context.Context, report *Report) error {
	started, finished := report.StartedAt, report.FinishedAt
	return s.save(ctx, &Status{
		State:      StateComplete,
		RunID:      report.RunID,
		StartedAt:  &started,
		FinishedAt: &finished,
		Printings:  report.Printings,
		Cards:      report.Cards,
	})
}

// Failed records a failed rebuild. The counts of the last good index are kept.
func (s *StatusStore) Failed(ctx context.Context, runID string, at time.Time, cause error) error {
	prev, err := s.Get(ctx)
	if err != nil {
		return err
	}
	prev.State = StateFailed
	prev.RunID = runID
	prev.Owner = ""
	prev.FinishedAt = &at
	prev.Error = cause.Error()
	return s.save(ctx, &prev)
}

// Recover marks a rebuild left running by an exited process as failed.
// Runs whose owner is still alive, or lives on another host, are left alone.
// It returns true when a stale run was found.
func (s *StatusStore) Recover(ctx context.Context) (bool, error) {
	st, err := s.Get(ctx)
	if err != nil || st.State != StateRunning || !ownerGone(st.Owner) {
		return false, err
	}
	return true, s.Failed(ctx, st.RunID, time.Now(), errors.New("interrupted before completion"))
}

func (s *StatusStore) save(ctx context.Context, st *Status) error {
	st.ID = statusRowID
	if err := s.db.WithContext(ctx).Save(st).Error; err != nil {
		return fmt.Errorf("failed to save index status: %w", err)
	}
	return nil
}
