package collection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"mana-vault/feature/collection/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrMissingPrinting is returned when an adjustment names no printing.
var ErrMissingPrinting = errors.New("missing printing id")

// Index maps between printings and canonical cards.
type Index interface {
	PrintingIDs(ctx context.Context, keys []string) (map[string][]string, error)
	CanonicalKeyFor(ctx context.Context, printingID string) (string, bool, error)
}

// Ledger records owned quantities per printing in the application store.
type Ledger struct {
	db     *gorm.DB
	index  Index
	logger *zap.Logger
}

// NewLedger creates a ledger. index may be nil, in which case canonical totals
// are unavailable.
func NewLedger(db *gorm.DB, index Index, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{db: db, index: index, logger: logger}
}

// Migrate creates or updates the collection table.
func (l *Ledger) Migrate() error {
	return l.db.AutoMigrate(&models.Holding{})
}

// maxInParams bounds the ids bound into one IN clause. Older SQLite builds
// reject statements with more than 999 variables.
var maxInParams = 500

// Quantities returns holdings for ids, newest first. No ids returns everything held.
func (l *Ledger) Quantities(ctx context.Context, ids []string) ([]models.Holding, error) {
	if len(ids) == 0 {
		return l.find(ctx, nil)
	}

	var holdings []models.Holding
	for chunk := range slices.Chunk(ids, maxInParams) {
		found, err := l.find(ctx, chunk)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, found...)
	}
	if len(ids) > maxInParams {
		sort.SliceStable(holdings, func(i, j int) bool {
			a, b := holdings[i], holdings[j]
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
			return a.PrintingID < b.PrintingID
		})
	}
	return holdings, nil
}

func (l *Ledger) find(ctx context.Context, ids []string) ([]models.Holding, error) {
	q := l.db.WithContext(ctx).Order("updated_at desc").Order("printing_id")
	if len(ids) > 0 {
		q = q.Where("printing_id IN ?", ids)
	}

	var holdings []models.Holding
	if err := q.Find(&holdings).Error; err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return holdings, nil
}

// Adjust adds delta and foilDelta to the holding of id. Quantities never drop
// below zero.
func (l *Ledger) Adjust(ctx context.Context, id string, delta, foilDelta int) (*models.Holding, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingPrinting
	}

	var out models.Holding
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var h models.Holding
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("printing_id = ?", id).Take(&h).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			h = models.Holding{PrintingID: id}
		case err != nil:
			return err
		}

		h.Qty = max(0, h.Qty+delta)
		h.FoilQty = max(0, h.FoilQty+foilDelta)
		if err := tx.Save(&h).Error; err != nil {
			return err
		}
		out = h
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to adjust %s: %w", id, err)
	}

	l.logger.Debug("Collection adjusted",
		zap.String("printing_id", id),
		zap.Int("qty", out.Qty),
		zap.Int("foil_qty", out.FoilQty),
	)
	return &out, nil
}

// Totals sums holdings over every printing of each key. Every requested key is
// present in the result.
func (l *Ledger) Totals(ctx context.Context, keys []string) (map[string]models.Totals, error) {
	out := make(map[string]models.Totals, len(keys))
	for _, key := range keys {
		out[key] = models.Totals{}
	}
	if len(keys) == 0 {
		return out, nil
	}
	if l.index == nil {
		return out, nil
	}

	printings, err := l.index.PrintingIDs(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve printings: %w", err)
	}

	owner := make(map[string]string)
	var ids []string
	for key, list := range printings {
		for _, id := range list {
			owner[id] = key
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return out, nil
	}

	holdings, err := l.Quantities(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, h := range holdings {
		key := owner[h.PrintingID]
		t := out[key]
		t.Add(h)
		out[key] = t
	}
	return out, nil
}

// Owned groups every non-empty holding by canonical card, ordered by key.
// Holdings whose printing is not in the index are skipped.
func (l *Ledger) Owned(ctx context.Context) ([]models.OwnedCard, error) {
	var holdings []models.Holding
	err := l.db.WithContext(ctx).
		Where("qty > 0 OR foil_qty > 0").
		Order("printing_id").
		Find(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	if l.index == nil {
		return nil, nil
	}

	byKey := make(map[string]*models.OwnedCard)
	for _, h := range holdings {
		key, ok, err := l.index.CanonicalKeyFor(ctx, h.PrintingID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", h.PrintingID, err)
		}
		if !ok {
			l.logger.Debug("Owned printing missing from index", zap.String("printing_id", h.PrintingID))
			continue
		}
		card, found := byKey[key]
		if !found {
			card = &models.OwnedCard{CanonicalKey: key}
			byKey[key] = card
		}
		card.Add(h)
		card.Printings = append(card.Printings, h)
	}

	out := make([]models.OwnedCard, 0, len(byKey))
	for _, card := range byKey {
		out = append(out, *card)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CanonicalKey < out[j].CanonicalKey
	})
	return out, nil
}
