package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	err = db.Exec("CREATE TABLE cards (uuid TEXT PRIMARY KEY NOT NULL, Name TEXT, manaValue REAL)").Error
	assert.NoError(t, err)

	columns, err := GetTableColumns(db, "cards")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "text", colMap["uuid"].Type)
	assert.Equal(t, "PRI", colMap["uuid"].Key)
	assert.Equal(t, "NO", colMap["uuid"].Null)
	assert.Equal(t, "text", colMap["name"].Type)
	assert.Equal(t, "YES", colMap["name"].Null)
	assert.Equal(t, "real", colMap["manavalue"].Type)

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_UnsafeName(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	_, err = GetTableColumns(db, "cards; DROP TABLE cards")
	assert.Error(t, err)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("printing_id", "VARCHAR(64)", "NO", "PRI", nil, "").
		AddRow("Qty", "INT", "NO", "", "0", "")
	mock.ExpectQuery("SHOW COLUMNS FROM `collection_cards`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "collection_cards")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "printing_id", columns[0].Field)
	assert.Equal(t, "varchar(64)", columns[0].Type)
	assert.Equal(t, "qty", columns[1].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableColumns_Postgres(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "column_default", "is_primary"}).
		AddRow("printing_id", "TEXT", "NO", nil, true).
		AddRow("Qty", "bigint", "YES", "0", false)
	mock.ExpectQuery(`FROM information_schema.columns c`).
		WithArgs("collection_cards").
		WillReturnRows(rows)

	columns, err := GetTableColumns(db, "collection_cards")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "printing_id", columns[0].Field)
	assert.Equal(t, "text", columns[0].Type)
	assert.Equal(t, "PRI", columns[0].Key)
	assert.Equal(t, "NO", columns[0].Null)
	assert.Equal(t, "qty", columns[1].Field)
	assert.Equal(t, "", columns[1].Key)
	require.NotNil(t, columns[1].Default)
	assert.Equal(t, "0", *columns[1].Default)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableColumns_PostgresFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(`FROM information_schema.columns c`).WillReturnError(assert.AnError)

	_, err = GetTableColumns(db, "index_status")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
