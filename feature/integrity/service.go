package integrity

import (
	"context"
	"errors"

	"mana-vault/core/storage"
	"mana-vault/feature/catalog"
	"mana-vault/feature/collection/models"
	"mana-vault/feature/index"
	"mana-vault/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotConfigured is returned by a check whose target is not configured.
var ErrNotConfigured = errors.New("check target is not configured")

// Service runs integrity checks over the upstream snapshot, the index store, the
// application store and the publication bucket. Any target may be nil.
type Service struct {
	reader  *catalog.Reader
	indexDB *gorm.DB
	appDB   *gorm.DB
	client  storage.Client
	bucket  string
	object  string
	logger  *zap.Logger
}

// Targets names what the checks inspect.
type Targets struct {
	Reader  *catalog.Reader
	IndexDB *gorm.DB
	AppDB   *gorm.DB
	Client  storage.Client
	Bucket  string
	Object  string
}

// NewService creates a new integrity service.
func NewService(targets Targets, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reader:  targets.Reader,
		indexDB: targets.IndexDB,
		appDB:   targets.AppDB,
		client:  targets.Client,
		bucket:  targets.Bucket,
		object:  targets.Object,
		logger:  logger,
	}
}

// CheckSchema reports drift of the upstream snapshot.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	if s.reader == nil {
		return nil, ErrNotConfigured
	}
	return checks.CheckSchema(ctx, s.reader), nil
}

// CheckIndex verifies the invariants of the index store.
func (s *Service) CheckIndex(ctx context.Context) (*checks.IndexReport, error) {
	if s.indexDB == nil {
		return nil, ErrNotConfigured
	}
	return checks.CheckIndex(ctx, s.indexDB)
}

// CheckApp verifies the application store tables against their models.
func (s *Service) CheckApp(ctx context.Context) (*checks.ModelReport, error) {
	if s.appDB == nil {
		return nil, ErrNotConfigured
	}
	return checks.CheckModels(s.appDB.WithContext(ctx), &models.Holding{}, &index.Status{})
}

// CheckStorage verifies the publication bucket and artifact.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, s.object)
}

// CheckAll runs every check. A check that cannot run is reported with its error
// instead of failing the others.
func (s *Service) CheckAll(ctx context.Context) map[string]any {
	report := make(map[string]any)
	add := func(name string, result any, err error) {
		switch {
		case errors.Is(err, ErrNotConfigured):
			report[name] = map[string]any{"status": "skipped"}
		case err != nil:
			s.logger.Warn("Integrity check failed", zap.String("check", name), zap.Error(err))
			report[name] = map[string]any{"status": "error", "error": err.Error()}
		default:
			report[name] = result
		}
	}

	schema, err := s.CheckSchema(ctx)
	add("schema", schema, err)
	idx, err := s.CheckIndex(ctx)
	add("index", idx, err)
	app, err := s.CheckApp(ctx)
	add("app", app, err)
	st, err := s.CheckStorage(ctx)
	add("storage", st, err)
	return report
}
