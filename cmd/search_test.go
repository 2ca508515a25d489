package cmd

import (
	"testing"

	"mana-vault/feature/search"

	"github.com/stretchr/testify/assert"
)

func TestSearchParams(t *testing.T) {
	searchFlags.sortKey = "manaValue"
	searchFlags.limit = 10
	searchFlags.offset = 0
	t.Cleanup(func() {
		searchFlags.sortKey = ""
		searchFlags.limit = 0
	})

	req := search.FromParams(searchParams([]string{"counterspell", "c:u"}).get)

	assert.Equal(t, []string{"counterspell"}, req.Filters.TextTerms)
	assert.Equal(t, []string{"U"}, req.Filters.Colors)
	assert.Equal(t, search.SortManaValue, req.Options.SortKey)
	assert.Equal(t, 10, req.Options.Limit)
	assert.Equal(t, 0, req.Options.Offset)
}
