package checks

import (
	"context"
	"fmt"

	"mana-vault/core/database"
	"mana-vault/feature/index"

	"gorm.io/gorm"
)

// IndexReport holds the structural invariants of the index store.
type IndexReport struct {
	Status                 string       `json:"status" yaml:"status"` // "ok", "failed", "unavailable"
	MissingTables          []string     `json:"missingTables" yaml:"missing_tables"`
	Cards                  int64        `json:"cards" yaml:"cards"`
	Printings              int64        `json:"printings" yaml:"printings"`
	Documents              int64        `json:"documents" yaml:"documents"`
	CardsWithoutPrintings  int64        `json:"cardsWithoutPrintings" yaml:"cards_without_printings"`
	MissingRepresentatives int64        `json:"missingRepresentatives" yaml:"missing_representatives"`
	OrphanPrintings        int64        `json:"orphanPrintings" yaml:"orphan_printings"`
	Models                 *ModelReport `json:"models,omitempty" yaml:"models,omitempty"`
	Problems               []string     `json:"problems" yaml:"problems"`
}

const (
	countCardsWithoutPrintings = `SELECT COUNT(*) FROM ` + index.TableCards + ` s
		WHERE NOT EXISTS (SELECT 1 FROM ` + index.TablePrintings + ` p WHERE p.canonical_key = s.canonical_key)`
	countMissingRepresentatives = `SELECT COUNT(*) FROM ` + index.TableCards + ` s
		WHERE NOT EXISTS (SELECT 1 FROM ` + index.TablePrintings + ` p
			WHERE p.printing_id = s.representative_printing_id AND p.canonical_key = s.canonical_key)`
	countOrphanPrintings = `SELECT COUNT(*) FROM ` + index.TablePrintings + ` p
		WHERE NOT EXISTS (SELECT 1 FROM ` + index.TableCards + ` s WHERE s.canonical_key = p.canonical_key)`
)

// CheckIndex verifies that every canonical card has a printing, that its
// representative is one of them, and that there is one search document per card.
func CheckIndex(ctx context.Context, db *gorm.DB) (*IndexReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &IndexReport{Status: "ok", MissingTables: []string{}, Problems: []string{}}
	intro := database.NewIntrospector(db, nil)
	if missing := intro.MissingTables(ctx, index.RequiredTables...); len(missing) > 0 {
		report.Status = "unavailable"
		report.MissingTables = missing
		return report, nil
	}

	models, err := CheckModels(db, &index.Card{}, &index.PrintingRef{})
	if err != nil {
		return nil, err
	}
	report.Models = models

	tx := db.WithContext(ctx)
	counts := []struct {
		dst *int64
		sql string
	}{
		{&report.Cards, "SELECT COUNT(*) FROM " + index.TableCards},
		{&report.Printings, "SELECT COUNT(*) FROM " + index.TablePrintings},
		{&report.Documents, "SELECT COUNT(*) FROM " + index.TableFTS},
		{&report.CardsWithoutPrintings, countCardsWithoutPrintings},
		{&report.MissingRepresentatives, countMissingRepresentatives},
		{&report.OrphanPrintings, countOrphanPrintings},
	}
	for _, c := range counts {
		if err := tx.Raw(c.sql).Scan(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to count index rows: %w", err)
		}
	}

	if !models.Matched {
		report.Problems = append(report.Problems, "index tables do not match their models")
	}
	if report.CardsWithoutPrintings > 0 {
		report.Problems = append(report.Problems, fmt.Sprintf("%d cards have no printings", report.CardsWithoutPrintings))
	}
	if report.MissingRepresentatives > 0 {
		report.Problems = append(report.Problems, fmt.Sprintf("%d cards have a representative outside their printings", report.MissingRepresentatives))
	}
	if report.OrphanPrintings > 0 {
		report.Problems = append(report.Problems, fmt.Sprintf("%d printings belong to no card", report.OrphanPrintings))
	}
	if report.Documents != report.Cards {
		report.Problems = append(report.Problems, fmt.Sprintf("%d search documents for %d cards", report.Documents, report.Cards))
	}
	if len(report.Problems) > 0 {
		report.Status = "failed"
	}
	return report, nil
}
