package search

import (
	"context"

	"go.uber.org/zap"
)

// Owned is the number of copies held across all printings of a card.
type Owned struct {
	Qty     int `json:"qty" yaml:"qty"`
	FoilQty int `json:"foilQty" yaml:"foilQty"`
}

// Ownership supplies owned totals per canonical key.
type Ownership interface {
	OwnedTotals(ctx context.Context, keys []string) (map[string]Owned, error)
}

// OwnershipFunc adapts a function to Ownership.
type OwnershipFunc func(ctx context.Context, keys []string) (map[string]Owned, error)

// OwnedTotals calls f.
func (f OwnershipFunc) OwnedTotals(ctx context.Context, keys []string) (map[string]Owned, error) {
	return f(ctx, keys)
}

// Page is one page of search results.
type Page struct {
	Results []Result `json:"results" yaml:"results"`
	Options Options  `json:"options" yaml:"options"`
	Filters Filters  `json:"filters" yaml:"filters"`
}

// Service runs searches and decorates results with ownership.
type Service struct {
	engine    *Engine
	ownership Ownership
	logger    *zap.Logger
}

// NewService creates a search service. ownership may be nil.
func NewService(engine *Engine, ownership Ownership, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{engine: engine, ownership: ownership, logger: logger}
}

// Engine returns the underlying query engine.
func (s *Service) Engine() *Engine {
	return s.engine
}

// Search runs req and attaches ownership totals to the page. Ownership runs after
// the indexed query and its failure only drops the totals.
func (s *Service) Search(ctx context.Context, req Request) (*Page, error) {
	opts := req.Options
	opts.Limit = effectiveLimit(opts.Limit, s.engine.limitMax)

	results, err := s.engine.Search(ctx, req.Filters, opts)
	if err != nil {
		return nil, err
	}
	s.attachOwnership(ctx, results)
	return &Page{Results: results, Options: opts, Filters: req.Filters}, nil
}

// Card returns one canonical card with its printings and ownership.
func (s *Service) Card(ctx context.Context, key string) (*Detail, error) {
	detail, err := s.engine.Card(ctx, key)
	if err != nil {
		return nil, err
	}
	results := []Result{detail.Result}
	s.attachOwnership(ctx, results)
	detail.Result = results[0]
	return detail, nil
}

func (s *Service) attachOwnership(ctx context.Context, results []Result) {
	if s.ownership == nil || len(results) == 0 {
		return
	}

	keys := make([]string, 0, len(results))
	for _, r := range results {
		keys = append(keys, r.CanonicalKey)
	}
	totals, err := s.ownership.OwnedTotals(ctx, keys)
	if err != nil {
		s.logger.Warn("Failed to load ownership totals", zap.Error(err))
		return
	}
	for i := range results {
		owned := totals[results[i].CanonicalKey]
		results[i].Owned = &owned
	}
}
