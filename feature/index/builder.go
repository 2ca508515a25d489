package index

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mana-vault/feature/canonical"
	"mana-vault/feature/catalog"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrRebuildInProgress is returned when a rebuild is triggered while another one runs.
var ErrRebuildInProgress = errors.New("index rebuild already in progress")

// Phase is the state of the builder.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseScanning    Phase = "scanning"
	PhaseAggregating Phase = "aggregating"
	PhaseWriting     Phase = "writing"
)

// PrintingSource streams upstream printings in a stable order.
type PrintingSource interface {
	Stream(ctx context.Context, fn func(catalog.Printing) error) error
}

// StatusRecorder persists the outcome of rebuilds outside the index store.
type StatusRecorder interface {
	Running(ctx context.Context, runID string, at time.Time) error
	Complete(ctx context.Context, report *Report) error
	Failed(ctx context.Context, runID string, at time.Time, cause error) error
}

// Progress is a snapshot of a running rebuild.
type Progress struct {
	Phase   Phase  `json:"phase"`
	RunID   string `json:"runId,omitempty"`
	Scanned int64  `json:"scanned"`
	Cards   int64  `json:"cards"`
}

// Report summarizes a successful rebuild.
type Report struct {
	RunID        string        `json:"runId" yaml:"run_id"`
	Printings    int64         `json:"printings" yaml:"printings"`
	Cards        int64         `json:"cards" yaml:"cards"`
	Skipped      int64         `json:"skipped" yaml:"skipped"`
	StartedAt    time.Time     `json:"startedAt" yaml:"started_at"`
	FinishedAt   time.Time     `json:"finishedAt" yaml:"finished_at"`
	Elapsed      time.Duration `json:"elapsed" yaml:"elapsed"`
	Published    string        `json:"published,omitempty" yaml:"published,omitempty"`
	PublishError string        `json:"publishError,omitempty" yaml:"publish_error,omitempty"`
}

// Builder rebuilds the index store from the upstream snapshot.
//
// Only one rebuild runs at a time. Every rebuild is a single transaction on the
// index store, so readers see either the previous index or the new one.
type Builder struct {
	source PrintingSource
	db     *gorm.DB
	status StatusRecorder
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	pmu      sync.RWMutex
	progress Progress
	onCommit []func()
}

// NewBuilder creates a builder writing to the index store db. status may be nil.
func NewBuilder(source PrintingSource, db *gorm.DB, status StatusRecorder, cfg Config, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		source:   source,
		db:       db,
		status:   status,
		cfg:      cfg,
		logger:   logger,
		progress: Progress{Phase: PhaseIdle},
	}
}

// OnCommit registers fn to run after every committed rebuild.
func (b *Builder) OnCommit(fn func()) {
	b.onCommit = append(b.onCommit, fn)
}

// Progress returns the current phase and counters.
func (b *Builder) Progress() Progress {
	b.pmu.RLock()
	defer b.pmu.RUnlock()
	return b.progress
}

// Rebuild runs a rebuild synchronously.
func (b *Builder) Rebuild(ctx context.Context) (*Report, error) {
	if !b.mu.TryLock() {
		return nil, ErrRebuildInProgress
	}
	defer b.mu.Unlock()
	return b.run(ctx, uuid.NewString())
}

// Start runs a rebuild in the background and returns its run id.
// The lock is taken before Start returns, so a second call fails immediately.
// done, when not nil, receives the outcome.
func (b *Builder) Start(ctx context.Context, done func(*Report, error)) (string, error) {
	if !b.mu.TryLock() {
		return "", ErrRebuildInProgress
	}
	runID := uuid.NewString()
	go func() {
		defer b.mu.Unlock()
		report, err := b.run(ctx, runID)
		if done != nil {
			done(report, err)
		}
	}()
	return runID, nil
}

func (b *Builder) run(ctx context.Context, runID string) (*Report, error) {
	log := b.logger.With(zap.String("run_id", runID))
	started := time.Now()

	b.setProgress(Progress{Phase: PhaseScanning, RunID: runID})
	defer b.setProgress(Progress{Phase: PhaseIdle})

	if b.status != nil {
		if err := b.status.Running(ctx, runID, started); err != nil {
			log.Warn("Failed to record rebuild status", zap.Error(err))
		}
	}

	log.Info("Index rebuild started")
	report, err := b.build(ctx, runID, log)
	if err != nil {
		log.Error("Index rebuild failed", zap.Error(err))
		if b.status != nil {
			// The run context may be the reason for the failure.
			if serr := b.status.Failed(context.WithoutCancel(ctx), runID, time.Now(), err); serr != nil {
				log.Warn("Failed to record rebuild status", zap.Error(serr))
			}
		}
		return nil, fmt.Errorf("rebuild failed: %w", err)
	}

	report.StartedAt = started
	report.FinishedAt = time.Now()
	report.Elapsed = report.FinishedAt.Sub(started)

	for _, fn := range b.onCommit {
		fn()
	}

	if b.status != nil {
		if err := b.status.Complete(ctx, report); err != nil {
			log.Warn("Failed to record rebuild status", zap.Error(err))
		}
	}

	log.Info("Index rebuild complete",
		zap.Int64("printings", report.Printings),
		zap.Int64("cards", report.Cards),
		zap.Int64("skipped", report.Skipped),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

func (b *Builder) build(ctx context.Context, runID string, log *zap.Logger) (*Report, error) {
	report := &Report{RunID: runID}
	batchSize := b.cfg.batchSize()
	every := b.cfg.progressEvery()

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recreateSchema(tx); err != nil {
			return err
		}

		agg := newAggregator()
		seen := make(map[string]struct{})
		batch := make([]PrintingRef, 0, batchSize)

		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			if err := tx.Create(&batch).Error; err != nil {
				return fmt.Errorf("failed to insert printings: %w", err)
			}
			batch = batch[:0]
			return nil
		}

		err := b.source.Stream(ctx, func(p catalog.Printing) error {
			if p.ID == "" {
				report.Skipped++
				return nil
			}
			if _, dup := seen[p.ID]; dup {
				report.Skipped++
				return nil
			}
			seen[p.ID] = struct{}{}

			key := canonical.Key(p.Identity())
			batch = append(batch, newPrintingRef(key, p))
			if len(batch) >= batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
			agg.add(key, p)

			report.Printings++
			b.setCounters(report.Printings, int64(agg.len()))
			if report.Printings%every == 0 {
				log.Info("Rebuild progress",
					zap.Int64("scanned", report.Printings),
					zap.Int("cards", agg.len()),
				)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to scan upstream: %w", err)
		}
		if err := flush(); err != nil {
			return err
		}

		b.setPhase(PhaseAggregating)
		cards := agg.cards()
		report.Cards = int64(len(cards))

		b.setPhase(PhaseWriting)
		if len(cards) > 0 {
			if err := tx.CreateInBatches(&cards, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert cards: %w", err)
			}
		}
		if err := tx.Exec(fillFTS).Error; err != nil {
			return fmt.Errorf("failed to fill search documents: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (b *Builder) setProgress(p Progress) {
	b.pmu.Lock()
	b.progress = p
	b.pmu.Unlock()
}

func (b *Builder) setPhase(phase Phase) {
	b.pmu.Lock()
	b.progress.Phase = phase
	b.pmu.Unlock()
}

func (b *Builder) setCounters(scanned, cards int64) {
	b.pmu.Lock()
	b.progress.Scanned = scanned
	b.progress.Cards = cards
	b.pmu.Unlock()
}
