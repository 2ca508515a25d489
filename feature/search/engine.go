package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mana-vault/core/database"
	"mana-vault/feature/index"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrIndexUnavailable means the index store has not been built.
	ErrIndexUnavailable = errors.New("index unavailable")
	// ErrCardNotFound means no canonical card has the requested key.
	ErrCardNotFound = errors.New("card not found")
)

// Result is one canonical card in a result page.
type Result struct {
	index.Card
	Colors             []string `json:"colors"`
	ColorIdentity      []string `json:"colorIdentity"`
	Keywords           []string `json:"keywords,omitempty"`
	Types              []string `json:"types,omitempty"`
	DisplayPrintingID  string   `json:"displayPrintingId"`
	DisplaySetCode     *string  `json:"displaySetCode,omitempty"`
	DisplayReleaseDate *string  `json:"displayReleaseDate,omitempty"`
	DisplayNumber      *string  `json:"displayNumber,omitempty"`
	Owned              *Owned   `json:"owned,omitempty"`
}

// Detail is a canonical card with all of its printings.
type Detail struct {
	Result
	Printings []index.PrintingRef `json:"printings"`
}

// row is the scan target of a compiled query.
type row struct {
	index.Card
	DisplayPrintingID  string  `gorm:"column:display_printing_id"`
	DisplaySetCode     *string `gorm:"column:display_set_code"`
	DisplayReleaseDate *string `gorm:"column:display_release_date"`
	DisplayNumber      *string `gorm:"column:display_number"`
}

func (r row) result() Result {
	return Result{
		Card:               r.Card,
		Colors:             splitColors(r.Card.Colors),
		ColorIdentity:      splitColors(r.Card.ColorIdentity),
		Keywords:           decodeList(r.Card.Keywords),
		Types:              decodeList(r.Card.Types),
		DisplayPrintingID:  r.DisplayPrintingID,
		DisplaySetCode:     r.DisplaySetCode,
		DisplayReleaseDate: r.DisplayReleaseDate,
		DisplayNumber:      r.DisplayNumber,
	}
}

// Engine answers queries against the index store.
type Engine struct {
	db       *gorm.DB
	intro    *database.Introspector
	limitMax int
	logger   *zap.Logger
}

// NewEngine creates an engine over the index store db. limitMax caps page sizes;
// zero means uncapped.
func NewEngine(db *gorm.DB, limitMax int, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		db:       db,
		intro:    database.NewIntrospector(db, logger),
		limitMax: limitMax,
		logger:   logger,
	}
}

// Invalidate drops the cached view of the index schema. It runs after every
// committed rebuild.
func (e *Engine) Invalidate() {
	e.intro.Invalidate()
}

// Ready returns ErrIndexUnavailable unless every index table exists.
// A missing table is probed again on every call, so an index built by another
// process becomes visible without a restart.
func (e *Engine) Ready(ctx context.Context) error {
	missing := e.intro.MissingTables(ctx, index.RequiredTables...)
	if len(missing) > 0 {
		e.intro.Invalidate()
		missing = e.intro.MissingTables(ctx, index.RequiredTables...)
	}
	if len(missing) > 0 {
		e.logger.Debug("Index tables missing", zap.Strings("tables", missing))
		return ErrIndexUnavailable
	}
	return nil
}

// Search runs one compiled query and returns the requested page.
func (e *Engine) Search(ctx context.Context, f Filters, opts Options) ([]Result, error) {
	if err := e.Ready(ctx); err != nil {
		return nil, err
	}

	sql, args := Compile(f, opts, e.limitMax)
	var rows []row
	if err := e.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, e.wrap("search failed", err)
	}

	results := make([]Result, 0, len(rows))
	for _, r := range rows {
		results = append(results, r.result())
	}
	return results, nil
}

// Card returns the canonical card for key with its printings.
func (e *Engine) Card(ctx context.Context, key string) (*Detail, error) {
	if err := e.Ready(ctx); err != nil {
		return nil, err
	}

	var cards []index.Card
	if err := e.db.WithContext(ctx).Where("canonical_key = ?", key).Limit(1).Find(&cards).Error; err != nil {
		return nil, e.wrap("failed to load card", err)
	}
	if len(cards) == 0 {
		return nil, ErrCardNotFound
	}
	card := cards[0]

	printings, err := e.Printings(ctx, key)
	if err != nil {
		return nil, err
	}

	var display *index.PrintingRef
	for i := range printings {
		if printings[i].PrintingID == card.RepresentativePrintingID {
			display = &printings[i]
			break
		}
	}
	r := row{Card: card, DisplayPrintingID: card.RepresentativePrintingID}
	if display != nil {
		r.DisplaySetCode = display.SetCode
		r.DisplayReleaseDate = display.ReleaseDate
		r.DisplayNumber = display.Number
	}
	return &Detail{Result: r.result(), Printings: printings}, nil
}

// Printings returns every printing of key, newest first.
func (e *Engine) Printings(ctx context.Context, key string) ([]index.PrintingRef, error) {
	if err := e.Ready(ctx); err != nil {
		return nil, err
	}

	var refs []index.PrintingRef
	err := e.db.WithContext(ctx).
		Where("canonical_key = ?", key).
		Order("(release_date IS NULL), release_date DESC, set_code ASC, printing_id ASC").
		Find(&refs).Error
	if err != nil {
		return nil, e.wrap("failed to load printings", err)
	}
	return refs, nil
}

// PrintingIDs maps each key to the ids of its printings. Unknown keys are absent.
func (e *Engine) PrintingIDs(ctx context.Context, keys []string) (map[string][]string, error) {
	out := make(map[string][]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	if err := e.Ready(ctx); err != nil {
		return nil, err
	}

	var refs []index.PrintingRef
	err := e.db.WithContext(ctx).
		Select("printing_id", "canonical_key").
		Where("canonical_key IN ?", keys).
		Order("canonical_key, printing_id").
		Find(&refs).Error
	if err != nil {
		return nil, e.wrap("failed to load printing ids", err)
	}
	for _, ref := range refs {
		out[ref.CanonicalKey] = append(out[ref.CanonicalKey], ref.PrintingID)
	}
	return out, nil
}

// CanonicalKeyFor looks up the canonical key recorded for a printing.
func (e *Engine) CanonicalKeyFor(ctx context.Context, printingID string) (string, bool, error) {
	if err := e.Ready(ctx); err != nil {
		return "", false, err
	}

	var refs []index.PrintingRef
	err := e.db.WithContext(ctx).Where("printing_id = ?", printingID).Limit(1).Find(&refs).Error
	if err != nil {
		return "", false, e.wrap("failed to look up printing", err)
	}
	if len(refs) == 0 {
		return "", false, nil
	}
	return refs[0].CanonicalKey, true, nil
}

// wrap reports a vanished index table as ErrIndexUnavailable.
func (e *Engine) wrap(msg string, err error) error {
	if strings.Contains(err.Error(), "no such table") {
		e.intro.Invalidate()
		return ErrIndexUnavailable
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func splitColors(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func decodeList(s *string) []string {
	if s == nil || *s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(*s), &out); err != nil {
		return nil
	}
	return out
}
