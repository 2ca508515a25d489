package database

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ColumnSet is the set of lower-cased column names of one table.
// It is shared between callers and must not be modified.
type ColumnSet map[string]struct{}

// Has reports whether the set contains name, ignoring case.
func (s ColumnSet) Has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Column is a physical column resolved against the live schema.
// The zero value means the column is unavailable.
type Column struct {
	Table string
	Name  string
}

// Present reports whether the column exists.
func (c Column) Present() bool {
	return c.Name != ""
}

// Expr renders the column qualified by alias, or NULL when it is unavailable.
func (c Column) Expr(alias string) string {
	if !c.Present() {
		return "NULL"
	}
	if alias == "" {
		return c.Name
	}
	return alias + "." + c.Name
}

// Introspector discovers which tables and columns exist and memoizes the answer.
//
// A missing table or column is never an error: probes that fail are logged and
// reported as empty, and downstream queries substitute NULL.
type Introspector struct {
	db     *gorm.DB
	logger *zap.Logger

	mu     sync.RWMutex
	tables map[string]ColumnSet
	sf     singleflight.Group
}

// NewIntrospector creates an introspector over db.
func NewIntrospector(db *gorm.DB, logger *zap.Logger) *Introspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Introspector{
		db:     db,
		logger: logger,
		tables: make(map[string]ColumnSet),
	}
}

// Columns returns the column set of table, empty when the table is absent.
func (i *Introspector) Columns(ctx context.Context, table string) ColumnSet {
	i.mu.RLock()
	cols, ok := i.tables[table]
	i.mu.RUnlock()
	if ok {
		return cols
	}

	result, _, _ := i.sf.Do(table, func() (interface{}, error) {
		i.mu.RLock()
		cols, ok := i.tables[table]
		i.mu.RUnlock()
		if ok {
			return cols, nil
		}

		infos, err := GetTableColumns(i.db.WithContext(ctx), table)
		if err != nil {
			// Not cached: a transient failure must not hide the table for the process lifetime.
			i.logger.Warn("Schema probe failed", zap.String("table", table), zap.Error(err))
			return ColumnSet{}, nil
		}

		cols = make(ColumnSet, len(infos))
		for _, info := range infos {
			cols[info.Field] = struct{}{}
		}

		i.mu.Lock()
		i.tables[table] = cols
		i.mu.Unlock()
		return cols, nil
	})

	return result.(ColumnSet)
}

// HasTable reports whether table exists.
func (i *Introspector) HasTable(ctx context.Context, table string) bool {
	return len(i.Columns(ctx, table)) > 0
}

// Pick returns the first candidate column present in table, in candidate order.
func (i *Introspector) Pick(ctx context.Context, table string, candidates ...string) Column {
	cols := i.Columns(ctx, table)
	for _, candidate := range candidates {
		if cols.Has(candidate) {
			return Column{Table: table, Name: candidate}
		}
	}
	return Column{}
}

// MissingTables returns the names from tables that do not exist, in input order.
func (i *Introspector) MissingTables(ctx context.Context, tables ...string) []string {
	var missing []string
	for _, table := range tables {
		if !i.HasTable(ctx, table) {
			missing = append(missing, table)
		}
	}
	return missing
}

// Invalidate drops every memoized answer. Only stores this process writes need it.
func (i *Introspector) Invalidate() {
	i.mu.Lock()
	i.tables = make(map[string]ColumnSet)
	i.mu.Unlock()
}
