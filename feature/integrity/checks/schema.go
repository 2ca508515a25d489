package checks

import (
	"context"

	"mana-vault/feature/catalog"
)

// FieldStatus is how one logical printing field resolved against the snapshot.
type FieldStatus struct {
	Field   string   `json:"field" yaml:"field"`
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Missing bool     `json:"missing" yaml:"missing"`
}

// SchemaReport is the drift report of the upstream snapshot.
type SchemaReport struct {
	Status  string          `json:"status" yaml:"status"` // "ok", "drift", "unavailable"
	Tables  map[string]bool `json:"tables" yaml:"tables"`
	Fields  []FieldStatus   `json:"fields" yaml:"fields"`
	Missing []string        `json:"missing" yaml:"missing"`
}

var upstreamTables = []string{
	catalog.TableCards,
	catalog.TableSets,
	catalog.TableIdentifiers,
	catalog.TableRulings,
	catalog.TableLegalities,
}

// CheckSchema resolves every logical field of the snapshot and reports the ones
// with no physical column. Missing fields read as NULL, so drift is reported,
// never raised.
func CheckSchema(ctx context.Context, reader *catalog.Reader) *SchemaReport {
	intro := reader.Introspector()
	report := &SchemaReport{
		Status:  "ok",
		Tables:  make(map[string]bool, len(upstreamTables)),
		Missing: []string{},
	}

	for _, table := range upstreamTables {
		report.Tables[table] = intro.HasTable(ctx, table)
	}
	if !report.Tables[catalog.TableCards] {
		report.Status = "unavailable"
	}

	for _, f := range reader.Fields(ctx) {
		status := FieldStatus{Field: f.Field.Name, Missing: !f.Present()}
		for _, col := range f.Columns {
			if col.Present() {
				status.Columns = append(status.Columns, col.Table+"."+col.Name)
			}
		}
		if status.Missing {
			report.Missing = append(report.Missing, f.Field.Name)
			if report.Status == "ok" {
				report.Status = "drift"
			}
		}
		report.Fields = append(report.Fields, status)
	}
	return report
}
