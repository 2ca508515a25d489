package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSort(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		dir     string
		legacy  string
		wantKey SortKey
		wantDir SortDir
	}{
		{"default", "", "", "", SortName, Asc},
		{"key default dir", "releaseDate", "", "", SortReleaseDate, Desc},
		{"case insensitive", "MANAVALUE", "", "", SortManaValue, Asc},
		{"explicit dir", "power", "asc", "", SortPower, Asc},
		{"bad dir uses default", "toughness", "sideways", "", SortToughness, Desc},
		{"unknown key", "price", "", "", SortName, Asc},
		{"legacy newest", "", "", "newest", SortReleaseDate, Desc},
		{"legacy oldest", "", "", "oldest", SortReleaseDate, Asc},
		{"legacy mana", "", "", "Mana", SortManaValue, Asc},
		{"legacy with dir", "", "desc", "name", SortName, Desc},
		{"key beats legacy", "artist", "", "newest", SortArtist, Asc},
		{"unknown legacy", "", "", "random", SortName, Asc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, dir := ResolveSort(tt.key, tt.dir, tt.legacy)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestDefaultDir(t *testing.T) {
	assert.Equal(t, Asc, SortSetNumber.DefaultDir())
	assert.Equal(t, Desc, SortPower.DefaultDir())
	assert.Equal(t, Asc, SortKey("bogus").DefaultDir())
}
