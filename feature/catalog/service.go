package catalog

import (
	"context"

	"mana-vault/feature/canonical"

	"go.uber.org/zap"
)

// PrintingView is one upstream printing with its canonical key.
type PrintingView struct {
	Printing
	CanonicalKey string `json:"canonicalKey" yaml:"canonical_key"`
}

// Service serves point lookups against the upstream snapshot.
type Service struct {
	reader   *Reader
	resolver *canonical.Resolver
	logger   *zap.Logger
}

// NewService creates a catalog service. resolver may be nil, in which case keys
// are computed from the upstream row alone.
func NewService(reader *Reader, resolver *canonical.Resolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if resolver == nil {
		resolver = canonical.NewResolver(nil, reader, logger)
	}
	return &Service{reader: reader, resolver: resolver, logger: logger}
}

// Printing returns one printing with its canonical key.
func (s *Service) Printing(ctx context.Context, id string) (*PrintingView, error) {
	p, ok, err := s.reader.Printing(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, canonical.ErrPrintingNotFound
	}
	key, err := s.resolver.KeyFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PrintingView{Printing: p, CanonicalKey: key}, nil
}

// CanonicalKey resolves the canonical key of one printing.
func (s *Service) CanonicalKey(ctx context.Context, id string) (string, error) {
	return s.resolver.KeyFor(ctx, id)
}

// Sets lists every upstream set.
func (s *Service) Sets(ctx context.Context) ([]Set, error) {
	return s.reader.Sets(ctx)
}

// Rulings lists the rulings of one printing.
func (s *Service) Rulings(ctx context.Context, id string) ([]Ruling, error) {
	return s.reader.Rulings(ctx, id)
}

// Legalities lists the format legalities of one printing.
func (s *Service) Legalities(ctx context.Context, id string) ([]Legality, error) {
	return s.reader.Legalities(ctx, id)
}
