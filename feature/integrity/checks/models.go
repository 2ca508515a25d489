package checks

import (
	"fmt"

	"mana-vault/core/database"

	"gorm.io/gorm"
)

// ModelReport compares live tables against the GORM models that own them.
type ModelReport struct {
	Matched bool                   `json:"matched" yaml:"matched"`
	Tables  map[string]TableReport `json:"tables" yaml:"tables"`
	Errors  []string               `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// TableReport lists the model columns a table lacks.
type TableReport struct {
	MissingColumns []string `json:"missing_columns" yaml:"missing_columns"`
	Status         string   `json:"status" yaml:"status"` // "ok", "missing", "error"
}

// CheckModels verifies that every column GORM maps for models exists in db.
func CheckModels(db *gorm.DB, models ...any) (*ModelReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &ModelReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		actual, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		present := make(map[string]bool, len(actual))
		for _, col := range actual {
			present[col.Field] = true
		}

		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(actual) == 0 {
			tbl.Status = "missing"
		}
		for _, name := range stmt.Schema.DBNames {
			if !present[name] {
				tbl.MissingColumns = append(tbl.MissingColumns, name)
				if tbl.Status == "ok" {
					tbl.Status = "error"
				}
			}
		}
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}
