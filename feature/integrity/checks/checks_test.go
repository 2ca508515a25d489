package checks

import (
	"path/filepath"
	"testing"

	"mana-vault/core/database"
	"mana-vault/feature/catalog"
	"mana-vault/feature/catalog/catalogtest"
	"mana-vault/feature/index"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func counterspellReader(t *testing.T) *catalog.Reader {
	t.Helper()
	sets, cards := catalogtest.Counterspell()
	db := catalogtest.Open(t, catalogtest.Write(t, sets, cards))
	return catalog.NewReader(db, nil, zap.NewNop())
}

func newIndexDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "index.sqlite"), database.SQLiteOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func builtIndex(t *testing.T) *gorm.DB {
	t.Helper()
	db := newIndexDB(t)
	_, err := index.NewBuilder(counterspellReader(t), db, nil, index.Config{}, zap.NewNop()).Rebuild(t.Context())
	require.NoError(t, err)
	return db
}
