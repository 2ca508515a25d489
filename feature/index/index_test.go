package index

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"mana-vault/core/database"
	"mana-vault/feature/catalog"
	"mana-vault/feature/catalog/catalogtest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// sliceSource streams a fixed list of printings.
type sliceSource struct {
	printings []catalog.Printing
	failAt    int
	block     chan struct{}
}

func (s *sliceSource) Stream(ctx context.Context, fn func(catalog.Printing) error) error {
	if s.block != nil {
		<-s.block
	}
	for i, p := range s.printings {
		if s.failAt > 0 && i == s.failAt {
			return errors.New("upstream read error")
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

func newIndexDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "index.sqlite"), database.SQLiteOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newStatusStore(t *testing.T) *StatusStore {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", database.SQLiteOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	store := NewStatusStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func counterspellReader(t *testing.T) *catalog.Reader {
	t.Helper()
	sets, cards := catalogtest.Counterspell()
	db := catalogtest.Open(t, catalogtest.Write(t, sets, cards))
	return catalog.NewReader(db, nil, zap.NewNop())
}

func printing(id, name, date string) catalog.Printing {
	return catalog.Printing{ID: id, Name: name, ReleaseDate: date, Layout: "normal", SetCode: "SET"}
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}
