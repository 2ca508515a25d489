package search

import "strings"

// SortKey is one of the fixed result orderings.
type SortKey string

const (
	SortName        SortKey = "name"
	SortReleaseDate SortKey = "releaseDate"
	SortSetNumber   SortKey = "setNumber"
	SortRarity      SortKey = "rarity"
	SortColor       SortKey = "color"
	SortManaValue   SortKey = "manaValue"
	SortPower       SortKey = "power"
	SortToughness   SortKey = "toughness"
	SortArtist      SortKey = "artist"
)

// SortDir is ascending or descending.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

var defaultDirs = map[SortKey]SortDir{
	SortName:        Asc,
	SortReleaseDate: Desc,
	SortSetNumber:   Asc,
	SortRarity:      Asc,
	SortColor:       Asc,
	SortManaValue:   Asc,
	SortPower:       Desc,
	SortToughness:   Desc,
	SortArtist:      Asc,
}

// legacySorts maps the older single sort parameter to a key and direction.
var legacySorts = map[string]struct {
	key SortKey
	dir SortDir
}{
	"newest": {SortReleaseDate, Desc},
	"oldest": {SortReleaseDate, Asc},
	"mana":   {SortManaValue, Asc},
	"name":   {SortName, Asc},
}

// DefaultDir returns the direction used when none is requested.
func (k SortKey) DefaultDir() SortDir {
	if dir, ok := defaultDirs[k]; ok {
		return dir
	}
	return Asc
}

// ParseSortKey matches raw case-insensitively against the known keys.
func ParseSortKey(raw string) (SortKey, bool) {
	raw = strings.TrimSpace(raw)
	for key := range defaultDirs {
		if strings.EqualFold(string(key), raw) {
			return key, true
		}
	}
	return "", false
}

// ParseSortDir parses asc/desc and reports whether raw was one of them.
func ParseSortDir(raw string) (SortDir, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc":
		return Asc, true
	case "desc":
		return Desc, true
	}
	return "", false
}

// ResolveSort picks the effective ordering. An explicit key wins over the legacy
// parameter; anything unrecognized sorts by name.
func ResolveSort(key, dir, legacy string) (SortKey, SortDir) {
	k, ok := ParseSortKey(key)
	if !ok {
		if l, found := legacySorts[strings.ToLower(strings.TrimSpace(legacy))]; found {
			if d, ok := ParseSortDir(dir); ok {
				return l.key, d
			}
			return l.key, l.dir
		}
		k = SortName
	}
	if d, ok := ParseSortDir(dir); ok {
		return k, d
	}
	return k, k.DefaultDir()
}
