package index

import (
	"fmt"

	"gorm.io/gorm"
)

// Tables of the index store.
const (
	TableCards     = "card_search"
	TablePrintings = "card_search_printings"
	TableFTS       = "card_search_fts"
)

// RequiredTables lists the tables a usable index store must contain.
var RequiredTables = []string{TableCards, TablePrintings, TableFTS}

var dropStatements = []string{
	"DROP TABLE IF EXISTS " + TableFTS,
	"DROP TABLE IF EXISTS " + TablePrintings,
	"DROP TABLE IF EXISTS " + TableCards,
}

var createStatements = []string{
	`CREATE TABLE ` + TableCards + ` (
		id INTEGER PRIMARY KEY,
		canonical_key TEXT NOT NULL UNIQUE,
		representative_printing_id TEXT NOT NULL,
		name TEXT NOT NULL,
		ascii_name TEXT,
		mana_cost TEXT,
		mana_value REAL,
		type_line TEXT,
		oracle_text TEXT,
		colors TEXT NOT NULL DEFAULT '',
		color_count INTEGER NOT NULL DEFAULT 0,
		color_identity TEXT NOT NULL DEFAULT '',
		color_identity_count INTEGER NOT NULL DEFAULT 0,
		rarity TEXT,
		rarity_rank INTEGER,
		keywords TEXT,
		types TEXT,
		power TEXT,
		power_value REAL,
		toughness TEXT,
		toughness_value REAL,
		loyalty TEXT,
		artist TEXT,
		flavor_text TEXT,
		latest_set_code TEXT,
		latest_release_date TEXT,
		latest_number TEXT,
		number_value INTEGER,
		number_suffix TEXT
	)`,
	`CREATE INDEX idx_card_search_name ON ` + TableCards + ` (name)`,
	`CREATE INDEX idx_card_search_mana_value ON ` + TableCards + ` (mana_value)`,
	`CREATE INDEX idx_card_search_release ON ` + TableCards + ` (latest_release_date)`,
	`CREATE INDEX idx_card_search_rarity ON ` + TableCards + ` (rarity)`,
	`CREATE TABLE ` + TablePrintings + ` (
		printing_id TEXT PRIMARY KEY,
		canonical_key TEXT NOT NULL,
		set_code TEXT,
		release_date TEXT,
		number TEXT,
		number_value INTEGER,
		number_suffix TEXT
	)`,
	`CREATE INDEX idx_card_search_printings_key ON ` + TablePrintings + ` (canonical_key)`,
	`CREATE INDEX idx_card_search_printings_set ON ` + TablePrintings + ` (set_code)`,
	// FTS4 ships with the default go-sqlite3 build; FTS5 needs a build tag.
	// unicode61 folds case and diacritics for every script, not only ASCII.
	`CREATE VIRTUAL TABLE ` + TableFTS + ` USING fts4(canonical_key, name, type, text, notindexed=canonical_key, tokenize=unicode61 "remove_diacritics=1")`,
}

const fillFTS = `INSERT INTO ` + TableFTS + ` (docid, canonical_key, name, type, text)
	SELECT id, canonical_key,
		name || CASE WHEN ascii_name IS NULL OR ascii_name = name THEN '' ELSE ' ' || ascii_name END,
		COALESCE(type_line, ''), COALESCE(oracle_text, '') FROM ` + TableCards

// recreateSchema drops and recreates every index table inside tx.
func recreateSchema(tx *gorm.DB) error {
	for _, stmt := range dropStatements {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to drop index tables: %w", err)
		}
	}
	for _, stmt := range createStatements {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index tables: %w", err)
		}
	}
	return nil
}
