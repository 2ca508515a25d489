package database

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var safeIdentifier = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ColumnInfo matches the output of SHOW COLUMNS. Other dialects are mapped onto it.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
// Column names and types are lower-cased. A missing table yields an empty slice on
// SQLite and Postgres.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	if !safeIdentifier.MatchString(tableName) {
		return nil, fmt.Errorf("unsafe table name: %q", tableName)
	}

	var columns []ColumnInfo
	if db.Dialector.Name() == "sqlite" {
		type sqliteColumn struct {
			Cid       int
			Name      string
			Type      string
			Notnull   int
			DfltValue *string
			Pk        int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			info := ColumnInfo{
				Field:   strings.ToLower(col.Name),
				Type:    strings.ToLower(col.Type),
				Default: col.DfltValue,
			}
			if col.Pk > 0 {
				info.Key = "PRI"
			}
			if col.Notnull == 1 {
				info.Null = "NO"
			} else {
				info.Null = "YES"
			}
			columns = append(columns, info)
		}
		return columns, nil
	}

	if db.Dialector.Name() == "postgres" {
		return postgresColumns(db, tableName)
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

const postgresColumnsQuery = `SELECT c.column_name, c.data_type, c.is_nullable, c.column_default,
	EXISTS (
		SELECT 1 FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage k
			ON k.constraint_name = tc.constraint_name AND k.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = c.table_schema
			AND tc.table_name = c.table_name AND k.column_name = c.column_name
	) AS is_primary
FROM information_schema.columns c
WHERE c.table_schema = current_schema() AND c.table_name = ?
ORDER BY c.ordinal_position`

func postgresColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	type postgresColumn struct {
		ColumnName    string
		DataType      string
		IsNullable    string
		ColumnDefault *string
		IsPrimary     bool
	}
	var pgCols []postgresColumn
	if err := db.Raw(postgresColumnsQuery, tableName).Scan(&pgCols).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(pgCols))
	for _, col := range pgCols {
		info := ColumnInfo{
			Field:   strings.ToLower(col.ColumnName),
			Type:    strings.ToLower(col.DataType),
			Null:    strings.ToUpper(col.IsNullable),
			Default: col.ColumnDefault,
		}
		if col.IsPrimary {
			info.Key = "PRI"
		}
		columns = append(columns, info)
	}
	return columns, nil
}
