// Package catalogtest builds small upstream snapshots on disk for tests.
package catalogtest

import (
	"path/filepath"
	"strings"
	"testing"

	"mana-vault/core/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Schema is the default snapshot layout, a subset of the MTGJSON SQLite export.
var Schema = []string{
	`CREATE TABLE cards (
		uuid TEXT PRIMARY KEY, name TEXT, asciiName TEXT, faceName TEXT, setCode TEXT, number TEXT,
		originalReleaseDate TEXT, rarity TEXT, manaCost TEXT, manaValue REAL, type TEXT, text TEXT,
		colors TEXT, colorIdentity TEXT, keywords TEXT, types TEXT, layout TEXT, side TEXT,
		power TEXT, toughness TEXT, loyalty TEXT, artist TEXT, flavorText TEXT
	)`,
	`CREATE TABLE sets (code TEXT PRIMARY KEY, name TEXT, releaseDate TEXT, type TEXT, keyruneCode TEXT)`,
	`CREATE TABLE cardIdentifiers (uuid TEXT PRIMARY KEY, scryfallOracleId TEXT, scryfallId TEXT)`,
	`CREATE TABLE cardRulings (uuid TEXT, date TEXT, text TEXT)`,
	`CREATE TABLE cardLegalities (uuid TEXT, commander TEXT, legacy TEXT, modern TEXT, vintage TEXT)`,
}

// Card is one fixture printing. Empty strings are stored as NULL.
type Card struct {
	UUID                string
	Name                string
	ASCIIName           string
	SetCode             string
	Number              string
	OriginalReleaseDate string
	Rarity              string
	ManaCost            string
	ManaValue           *float64
	Type                string
	Text                string
	Colors              string
	ColorIdentity       string
	Keywords            string
	Types               string
	Layout              string
	Side                string
	Power               string
	Toughness           string
	Loyalty             string
	Artist              string
	Flavor              string
	ScryfallOracleID    string
}

// Set is one fixture set.
type Set struct {
	Code        string
	Name        string
	ReleaseDate string
	Type        string
}

// MV returns a mana value pointer.
func MV(v float64) *float64 {
	return &v
}

// Write creates a snapshot file with the default schema and the given rows and
// returns its path.
func Write(t testing.TB, sets []Set, cards []Card) string {
	t.Helper()
	return WriteSchema(t, Schema, func(db *gorm.DB) {
		Insert(t, db, sets, cards)
	})
}

// WriteSchema creates a snapshot file from custom DDL; seed may fill it.
func WriteSchema(t testing.TB, ddl []string, seed func(db *gorm.DB)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upstream.sqlite")

	db, err := database.OpenSQLite(path, database.SQLiteOptions{})
	require.NoError(t, err)
	defer database.Close(db)

	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	if seed != nil {
		seed(db)
	}
	return path
}

// Insert adds fixture rows to a snapshot using the default schema.
func Insert(t testing.TB, db *gorm.DB, sets []Set, cards []Card) {
	t.Helper()
	for _, s := range sets {
		require.NoError(t, db.Exec(
			"INSERT INTO sets (code, name, releaseDate, type) VALUES (?, ?, ?, ?)",
			s.Code, null(s.Name), null(s.ReleaseDate), null(s.Type),
		).Error)
	}
	for _, c := range cards {
		require.NoError(t, db.Exec(
			`INSERT INTO cards (uuid, name, asciiName, setCode, number, originalReleaseDate, rarity, manaCost,
				manaValue, type, text, colors, colorIdentity, keywords, types, layout, side, power, toughness,
				loyalty, artist, flavorText)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.UUID, null(c.Name), null(c.ASCIIName), null(c.SetCode), null(c.Number), null(c.OriginalReleaseDate),
			null(c.Rarity), null(c.ManaCost), c.ManaValue, null(c.Type), null(c.Text), null(c.Colors),
			null(c.ColorIdentity), null(c.Keywords), null(c.Types), null(c.Layout), null(c.Side), null(c.Power),
			null(c.Toughness), null(c.Loyalty), null(c.Artist), null(c.Flavor),
		).Error)
		if c.ScryfallOracleID != "" {
			require.NoError(t, db.Exec(
				"INSERT INTO cardIdentifiers (uuid, scryfallOracleId) VALUES (?, ?)",
				c.UUID, c.ScryfallOracleID,
			).Error)
		}
	}
}

// Open opens a snapshot read-only and closes it when the test ends.
func Open(t testing.TB, path string) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(path, database.SQLiteOptions{ReadOnly: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// Counterspell returns the reference scenario: three printings of Counterspell sharing
// one oracle id across sets A (1993), B (2001) and C (2015), and one Opt printing in
// set D with no identifier.
func Counterspell() ([]Set, []Card) {
	sets := []Set{
		{Code: "A", Name: "Alpha", ReleaseDate: "1993-08-05", Type: "core"},
		{Code: "B", Name: "Beta Masters", ReleaseDate: "2001-04-01", Type: "masters"},
		{Code: "C", Name: "Commander Legends", ReleaseDate: "2015-06-01", Type: "commander"},
		{Code: "D", Name: "Dominaria", ReleaseDate: "2018-04-27", Type: "expansion"},
	}
	counter := func(uuid, set, number string) Card {
		return Card{
			UUID: uuid, Name: "Counterspell", SetCode: set, Number: number, Rarity: "uncommon",
			ManaCost: "{U}{U}", ManaValue: MV(2), Type: "Instant", Text: "Counter target spell.",
			Colors: "U", ColorIdentity: "U", Types: "Instant", Layout: "normal", Artist: "Mark Poole",
			ScryfallOracleID: "oracle-counterspell",
		}
	}
	cards := []Card{
		counter("cs-a", "A", "54"),
		counter("cs-b", "B", "12"),
		counter("cs-c", "C", "77"),
		{
			UUID: "opt-d", Name: "Opt", SetCode: "D", Number: "60", Rarity: "common", ManaCost: "{U}",
			ManaValue: MV(1), Type: "Instant", Text: "Scry 1.\nDraw a card.", Colors: "U", ColorIdentity: "U",
			Keywords: "Scry", Types: "Instant", Layout: "normal", Artist: "Tyler Jacobson",
		},
	}
	return sets, cards
}

func null(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
