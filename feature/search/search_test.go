package search

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

// spectrum extends the Counterspell scenario with cards covering every color
// shape, stat and sort column.
func spectrum() ([]catalogtest.Set, []catalogtest.Card) {
	sets, cards := catalogtest.Counterspell()
	mv := catalogtest.MV
	cards = append(cards,
		catalogtest.Card{
			UUID: "bolt-d", Name: "Lightning Bolt", SetCode: "D", Number: "141", Rarity: "common",
			ManaCost: "{R}", ManaValue: mv(1), Type: "Instant",
			Text: "Lightning Bolt deals 3 damage to any target.", Colors: "R", ColorIdentity: "R",
			Layout: "normal", Artist: "Christopher Moeller",
		},
		catalogtest.Card{
			UUID: "azorius-d", Name: "Azorius Charm", SetCode: "D", Number: "192", Rarity: "uncommon",
			ManaCost: "{W}{U}", ManaValue: mv(2), Type: "Instant",
			Text: "Choose one. You gain life. Put target attacking creature on top of its owner's library.",
			Colors: "W,U", ColorIdentity: "W,U", Layout: "normal", Artist: "Zoltan Boros",
		},
		catalogtest.Card{
			UUID: "esper-d", Name: "Esper Charm", SetCode: "D", Number: "193", Rarity: "uncommon",
			ManaCost: "{W}{U}{B}", ManaValue: mv(3), Type: "Instant",
			Text: "Choose one. Destroy target enchantment. Target player draws two cards.",
			Colors: "B,U,W", ColorIdentity: "W,U,B", Layout: "normal", Artist: "Michael Bruinsma",
		},
		catalogtest.Card{
			UUID: "elves-d", Name: "Llanowar Elves", SetCode: "D", Number: "168", Rarity: "common",
			ManaCost: "{G}", ManaValue: mv(1), Type: "Creature — Elf Druid", Text: "{T}: Add {G}.",
			Colors: "G", ColorIdentity: "G", Layout: "normal", Power: "1", Toughness: "1",
			Artist: "Chris Rahn",
		},
		catalogtest.Card{
			UUID: "serra-a", Name: "Serra Angel", SetCode: "A", Number: "39", Rarity: "uncommon",
			ManaCost: "{3}{W}{W}", ManaValue: mv(5), Type: "Creature — Angel", Text: "Flying, vigilance",
			Colors: "W", ColorIdentity: "W", Layout: "normal", Power: "4", Toughness: "4",
			Artist: "Douglas Shuler", Flavor: "Born with wings of light and a sword of faith.",
		},
		catalogtest.Card{
			UUID: "bears-a", Name: "Grizzly Bears", SetCode: "A", Number: "190", Rarity: "common",
			ManaCost: "{1}{G}", ManaValue: mv(2), Type: "Creature — Bear", Colors: "G", ColorIdentity: "G",
			Layout: "normal", Power: "2", Toughness: "2", Artist: "Jeff A. Menges",
		},
		catalogtest.Card{
			UUID: "sol-c", Name: "Sol Ring", SetCode: "C", Number: "125", Rarity: "uncommon",
			ManaCost: "{1}", ManaValue: mv(1), Type: "Artifact", Text: "{T}: Add {C}{C}.",
			Layout: "normal", Artist: "Mark Tedin",
		},
		catalogtest.Card{
			UUID: "goyf-c", Name: "Tarmogoyf", SetCode: "C", Number: "153", Rarity: "rare",
			ManaCost: "{1}{G}", ManaValue: mv(2), Type: "Creature — Lhurgoyf",
			Text: "Tarmogoyf's power is equal to the number of card types among cards in all graveyards.",
			Colors: "G", ColorIdentity: "G", Layout: "normal", Power: "*", Toughness: "1+*",
			Artist: "Justin Murray",
		},
	)
	return sets, cards
}

// fixture is a built index with its engine and upstream reader.
type fixture struct {
	engine *Engine
	reader *catalog.Reader
	db     *gorm.DB
}

func newIndexDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openIndexDB(t, filepath.Join(t.TempDir(), "index.sqlite"))
}

// openIndexDB opens one more handle on the index file at path.
func openIndexDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(path, database.SQLiteOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// buildFixture builds the spectrum index. limitMax caps page sizes.
func buildFixture(t *testing.T, limitMax int) *fixture {
	t.Helper()
	sets, cards := spectrum()
	return buildIndex(t, sets, cards, limitMax)
}

func buildIndex(t *testing.T, sets []catalogtest.Set, cards []catalogtest.Card, limitMax int) *fixture {
	t.Helper()
	reader := newReader(t, sets, cards)

	db := newIndexDB(t)
	engine := NewEngine(db, limitMax, zap.NewNop())
	builder := index.NewBuilder(reader, db, nil, index.Config{}, zap.NewNop())
	builder.OnCommit(engine.Invalidate)
	_, err := builder.Rebuild(t.Context())
	require.NoError(t, err)

	return &fixture{engine: engine, reader: reader, db: db}
}

func newReader(t *testing.T, sets []catalogtest.Set, cards []catalogtest.Card) *catalog.Reader {
	t.Helper()
	upstream := catalogtest.Open(t, catalogtest.Write(t, sets, cards))
	return catalog.NewReader(upstream, nil, zap.NewNop())
}

func names(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Name)
	}
	return out
}
