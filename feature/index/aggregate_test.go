package index

import (
	"testing"

	"mana-vault/feature/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_LatestReleaseWins(t *testing.T) {
	agg := newAggregator()
	agg.add("k", printing("p-null", "Bolt", ""))
	agg.add("k", printing("p-1999", "Bolt", "1999-01-01"))
	agg.add("k", printing("p-2020", "Bolt", "2020-05-01"))

	cards := agg.cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "p-2020", cards[0].RepresentativePrintingID)
	assert.Equal(t, "2020-05-01", *cards[0].LatestReleaseDate)
}

func TestAggregator_AllNullFirstSeenWins(t *testing.T) {
	agg := newAggregator()
	agg.add("k", printing("first", "Bolt", ""))
	agg.add("k", printing("second", "Bolt", ""))

	assert.Equal(t, "first", agg.cards()[0].RepresentativePrintingID)
}

func TestAggregator_TiesKeepFirstSeen(t *testing.T) {
	agg := newAggregator()
	assert.True(t, agg.add("k", printing("first", "Bolt", "2010-01-01")))
	assert.False(t, agg.add("k", printing("second", "Bolt", "2010-01-01")))
	assert.False(t, agg.add("k", printing("older", "Bolt", "2009-01-01")))
	assert.False(t, agg.add("k", printing("undated", "Bolt", "")))

	assert.Equal(t, "first", agg.cards()[0].RepresentativePrintingID)
}

func TestAggregator_FirstSeenKeyOrder(t *testing.T) {
	agg := newAggregator()
	agg.add("b", printing("1", "B", ""))
	agg.add("a", printing("2", "A", ""))
	agg.add("b", printing("3", "B", "2000-01-01"))

	cards := agg.cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "b", cards[0].CanonicalKey)
	assert.Equal(t, int64(1), cards[0].ID)
	assert.Equal(t, "a", cards[1].CanonicalKey)
	assert.Equal(t, int64(2), cards[1].ID)
	assert.Equal(t, 2, agg.len())
}

func TestNewCard_DerivedColumns(t *testing.T) {
	mv := 3.0
	p := catalog.Printing{
		ID: "p1", Name: "Tarmogoyf", SetCode: "FUT", Number: "153a", ReleaseDate: "2007-05-04",
		Rarity: "rare", ManaValue: &mv, Colors: []string{"G"}, ColorIdentity: []string{"G"},
		Keywords: nil, Types: []string{"Creature"}, Power: "*", Toughness: "1+*",
	}
	card := newCard(7, "oracle-goyf", p)

	assert.Equal(t, "G", card.Colors)
	assert.Equal(t, 1, card.ColorCount)
	require.NotNil(t, card.RarityRank)
	assert.Equal(t, 3, *card.RarityRank)
	assert.Nil(t, card.Keywords)
	require.NotNil(t, card.Types)
	assert.Equal(t, `["Creature"]`, *card.Types)
	assert.Equal(t, "*", *card.Power)
	assert.Nil(t, card.PowerValue)
	assert.Nil(t, card.ToughnessValue)
	require.NotNil(t, card.NumberValue)
	assert.Equal(t, 153, *card.NumberValue)
	assert.Equal(t, "a", *card.NumberSuffix)
	assert.Equal(t, "FUT", *card.LatestSetCode)

	colorless := newCard(8, "k", catalog.Printing{ID: "p2", Rarity: "special"})
	assert.Equal(t, "", colorless.Colors)
	assert.Equal(t, 0, colorless.ColorCount)
	assert.Nil(t, colorless.RarityRank)
	assert.Equal(t, "p2", colorless.Name)
}

func TestNewCard_ASCIIName(t *testing.T) {
	upstream := newCard(1, "k1", catalog.Printing{ID: "p1", Name: "Æther Vial", ASCIIName: "Aether Vial"})
	require.NotNil(t, upstream.ASCIIName)
	assert.Equal(t, "Aether Vial", *upstream.ASCIIName)

	derived := newCard(2, "k2", catalog.Printing{ID: "p2", Name: "Lim-Dûl's Vault"})
	require.NotNil(t, derived.ASCIIName)
	assert.Equal(t, "Lim-Dul's Vault", *derived.ASCIIName)

	plain := newCard(3, "k3", catalog.Printing{ID: "p3", Name: "Counterspell"})
	assert.Nil(t, plain.ASCIIName)
}
