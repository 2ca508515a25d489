package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "vault",
			Driver:         DriverMySQL,
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("SQLite File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "app.sqlite")
		db, err := Connect(Config{Driver: DriverSQLite, Name: path})
		require.NoError(t, err)
		defer Close(db)

		require.NoError(t, db.Exec("CREATE TABLE t (id INTEGER)").Error)
		assert.FileExists(t, path)
	})
}

func TestOpenSQLite(t *testing.T) {
	t.Run("ReadOnly Missing File", func(t *testing.T) {
		db, err := OpenSQLite(filepath.Join(t.TempDir(), "missing.sqlite"), SQLiteOptions{ReadOnly: true})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("ReadOnly Rejects Writes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "upstream.sqlite")
		rw, err := OpenSQLite(path, SQLiteOptions{})
		require.NoError(t, err)
		require.NoError(t, rw.Exec("CREATE TABLE cards (uuid TEXT)").Error)
		require.NoError(t, Close(rw))

		ro, err := OpenSQLite(path, SQLiteOptions{ReadOnly: true})
		require.NoError(t, err)
		defer Close(ro)

		var count int64
		require.NoError(t, ro.Raw("SELECT COUNT(*) FROM cards").Scan(&count).Error)
		assert.Equal(t, int64(0), count)
		assert.Error(t, ro.Exec("INSERT INTO cards (uuid) VALUES ('x')").Error)
	})

	t.Run("Memory Shares One Connection", func(t *testing.T) {
		db, err := OpenSQLite(":memory:", SQLiteOptions{})
		require.NoError(t, err)
		defer Close(db)

		require.NoError(t, db.Exec("CREATE TABLE t (id INTEGER)").Error)
		assert.True(t, db.Migrator().HasTable("t"))
	})
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close(nil))
}
