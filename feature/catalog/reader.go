package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"mana-vault/core/database"
	"mana-vault/core/utils"
	"mana-vault/feature/canonical"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrSourceUnavailable is returned when the snapshot has no readable cards table.
var ErrSourceUnavailable = errors.New("upstream snapshot has no cards table")

// Reader reads printings and side tables from the upstream snapshot.
// Every column goes through the introspector, so a missing column reads as absent.
type Reader struct {
	db     *gorm.DB
	intro  *database.Introspector
	logger *zap.Logger
}

// NewReader creates a reader over the snapshot handle db.
func NewReader(db *gorm.DB, intro *database.Introspector, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if intro == nil {
		intro = database.NewIntrospector(db, logger)
	}
	return &Reader{db: db, intro: intro, logger: logger}
}

// Introspector exposes the schema cache of the snapshot.
func (r *Reader) Introspector() *database.Introspector {
	return r.intro
}

// Fields reports how every logical printing field resolves against the snapshot.
func (r *Reader) Fields(ctx context.Context) []ResolvedField {
	if p, ok := buildProjection(ctx, r.intro); ok {
		return p.fields
	}
	return resolveFields(ctx, r.intro, map[string]bool{TableCards: true})
}

// Stream calls fn once per printing in upstream row order.
// Rows are read one at a time; an error from fn stops the scan and is returned.
func (r *Reader) Stream(ctx context.Context, fn func(Printing) error) error {
	p, ok := buildProjection(ctx, r.intro)
	if !ok {
		return ErrSourceUnavailable
	}

	rows, err := r.db.WithContext(ctx).Raw(p.sql + " ORDER BY c.rowid").Rows()
	if err != nil {
		return fmt.Errorf("failed to query printings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := scanRow(rows)
		if err != nil {
			return fmt.Errorf("failed to scan printing: %w", err)
		}
		if err := fn(printingFromRow(row)); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Printing reads one printing by id.
func (r *Reader) Printing(ctx context.Context, id string) (Printing, bool, error) {
	p, ok := buildProjection(ctx, r.intro)
	if !ok {
		return Printing{}, false, nil
	}

	rows, err := r.db.WithContext(ctx).Raw(p.sql+" WHERE "+p.idExpr+" = ? LIMIT 1", id).Rows()
	if err != nil {
		return Printing{}, false, fmt.Errorf("failed to query printing %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return Printing{}, false, rows.Err()
	}
	row, err := scanRow(rows)
	if err != nil {
		return Printing{}, false, fmt.Errorf("failed to scan printing %s: %w", id, err)
	}
	return printingFromRow(row), true, nil
}

// Identity reads the canonical identity fields of one printing.
func (r *Reader) Identity(ctx context.Context, id string) (canonical.Identity, bool, error) {
	p, ok, err := r.Printing(ctx, id)
	if err != nil || !ok {
		return canonical.Identity{}, ok, err
	}
	return p.Identity(), true, nil
}

// Sets lists every set, newest first.
func (r *Reader) Sets(ctx context.Context) ([]Set, error) {
	codeCol := r.intro.Pick(ctx, TableSets, "code", "setCode")
	if !codeCol.Present() {
		return []Set{}, nil
	}
	nameCol := r.intro.Pick(ctx, TableSets, "name")
	dateCol := r.intro.Pick(ctx, TableSets, "releaseDate")
	typeCol := r.intro.Pick(ctx, TableSets, "type")
	symbolCol := r.intro.Pick(ctx, TableSets, "keyruneCode", "symbol", "iconSvgUri", "iconSvg")

	query := fmt.Sprintf(
		"SELECT %s AS code, %s AS name, %s AS release_date, %s AS type, %s AS symbol FROM %s s ORDER BY release_date DESC, code ASC",
		codeCol.Expr("s"), nameCol.Expr("s"), dateCol.Expr("s"), typeCol.Expr("s"), symbolCol.Expr("s"), TableSets,
	)

	rows, err := r.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query sets: %w", err)
	}
	defer rows.Close()

	sets := []Set{}
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan set: %w", err)
		}
		set := Set{
			Code:        utils.ToString(row["code"]),
			Name:        utils.ToString(row["name"]),
			ReleaseDate: utils.ToString(row["release_date"]),
			Type:        utils.ToString(row["type"]),
			Symbol:      utils.ToString(row["symbol"]),
		}
		if set.Name == "" {
			set.Name = set.Code
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// Rulings lists the rulings of a printing, oldest first.
func (r *Reader) Rulings(ctx context.Context, id string) ([]Ruling, error) {
	uuidCol := r.intro.Pick(ctx, TableRulings, "uuid")
	textCol := r.intro.Pick(ctx, TableRulings, "text", "ruling")
	if !uuidCol.Present() || !textCol.Present() {
		return []Ruling{}, nil
	}
	dateCol := r.intro.Pick(ctx, TableRulings, "date")
	sourceCol := r.intro.Pick(ctx, TableRulings, "source", "provider")

	query := fmt.Sprintf(
		"SELECT %s AS date, %s AS text, %s AS source FROM %s r WHERE %s = ? ORDER BY date ASC",
		dateCol.Expr("r"), textCol.Expr("r"), sourceCol.Expr("r"), TableRulings, uuidCol.Expr("r"),
	)

	rows, err := r.db.WithContext(ctx).Raw(query, id).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query rulings: %w", err)
	}
	defer rows.Close()

	rulings := []Ruling{}
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ruling: %w", err)
		}
		rulings = append(rulings, Ruling{
			Date:   utils.ToString(row["date"]),
			Text:   utils.ToString(row["text"]),
			Source: utils.ToString(row["source"]),
		})
	}
	return rulings, rows.Err()
}

// Legalities lists the format legalities of a printing, ordered by format.
//
// Snapshots store legalities either as one row per format (format, status) or as one
// wide row per printing with a column per format; both are read.
func (r *Reader) Legalities(ctx context.Context, id string) ([]Legality, error) {
	cols := r.intro.Columns(ctx, TableLegalities)
	if !cols.Has("uuid") {
		return []Legality{}, nil
	}

	formatCol := r.intro.Pick(ctx, TableLegalities, "format", "formatName")
	statusCol := r.intro.Pick(ctx, TableLegalities, "legality", "status", "legal", "legalStatus")

	var query string
	if formatCol.Present() && statusCol.Present() {
		query = fmt.Sprintf("SELECT %s AS format, %s AS status FROM %s l WHERE l.uuid = ?",
			formatCol.Expr("l"), statusCol.Expr("l"), TableLegalities)
	} else {
		query = fmt.Sprintf("SELECT * FROM %s l WHERE l.uuid = ?", TableLegalities)
	}

	rows, err := r.db.WithContext(ctx).Raw(query, id).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query legalities: %w", err)
	}
	defer rows.Close()

	legalities := []Legality{}
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legality: %w", err)
		}
		if formatCol.Present() && statusCol.Present() {
			format, status := utils.ToString(row["format"]), utils.ToString(row["status"])
			if format != "" && status != "" {
				legalities = append(legalities, Legality{Format: format, Status: status})
			}
			continue
		}
		for name, value := range row {
			if name != strings.ToLower(name) || name == "uuid" || name == "id" || value == nil {
				continue
			}
			if status := utils.ToString(value); status != "" {
				legalities = append(legalities, Legality{Format: name, Status: status})
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(legalities, func(i, j int) bool {
		return legalities[i].Format < legalities[j].Format
	})
	return legalities, nil
}

// scanRow reads the current row into a map keyed by column name. Mixed-case names are
// also reachable in lower case.
func scanRow(rows *sql.Rows) (map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(map[string]any, len(columns))
	for i, col := range columns {
		row[col] = values[i]
		if lower := strings.ToLower(col); lower != col {
			if _, exists := row[lower]; !exists {
				row[lower] = values[i]
			}
		}
	}
	return row, nil
}
