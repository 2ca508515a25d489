package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func render(sql string, args []any) []byte {
	var b strings.Builder
	b.WriteString(sql)
	b.WriteString("\n")
	for i, a := range args {
		fmt.Fprintf(&b, "-- arg %d: %v\n", i+1, a)
	}
	return []byte(b.String())
}

func TestCompile_Golden(t *testing.T) {
	tests := []struct {
		name     string
		filters  Filters
		opts     Options
		limitMax int
	}{
		{
			name:     "default",
			limitMax: 200,
		},
		{
			name:     "set_scoped_text",
			filters:  Parse(`t:instant c:wu set:d "draw a card" mv<=3`),
			opts:     Options{SortKey: SortReleaseDate, SortDir: Desc, Limit: 500},
			limitMax: 200,
		},
		{
			name: "pseudo_colors_set_number",
			filters: Filters{
				Colors:    []string{"R", Colorless, Multicolor},
				Power:     Range{Min: floatPtr(2)},
				Rarities:  []string{"rare", "mythic"},
				CardTypes: []string{"creature"},
			},
			opts: Options{SortKey: SortSetNumber, SortDir: Desc, Offset: 10},
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := Compile(tt.filters, tt.opts, tt.limitMax)
			g.Assert(t, tt.name, render(sql, args))
		})
	}
}

func TestMatchExpression(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    string
	}{
		{"empty", Filters{}, ""},
		{"single word", Filters{TextTerms: []string{"Bolt"}}, "bolt"},
		{"phrase", Filters{TextTerms: []string{"draw a card"}}, `"draw a card"`},
		{"punctuation stripped", Filters{TextTerms: []string{`"AND" (x)*`}}, `"and x"`},
		{"nothing left", Filters{TextTerms: []string{"!!!"}}, ""},
		{"diacritics folded", Filters{TextTerms: []string{"Lim-Dûl"}}, `"lim dul"`},
		{"ligature spelled out", Filters{NameTerms: []string{"Æther"}}, "name:aether"},
		{"column words", Filters{NameTerms: []string{"Lightning Bolt"}}, "name:lightning name:bolt"},
		{"all columns", Filters{
			TextTerms:   []string{"counter"},
			NameTerms:   []string{"spell"},
			TypeTerms:   []string{"instant"},
			OracleTerms: []string{"target"},
		}, "counter name:spell type:instant text:target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchExpression(tt.filters))
		})
	}
}

func TestOrderBy_TieBreak(t *testing.T) {
	for key := range defaultDirs {
		for _, dir := range []SortDir{Asc, Desc} {
			terms := orderBy(Options{SortKey: key, SortDir: dir}, representativeDisplay)
			n := len(terms)
			assert.Equal(t, "s.canonical_key ASC", terms[n-1], "%s %s", key, dir)
			assert.Contains(t, terms, "s.name COLLATE NOCASE ASC", "%s %s", key, dir)
		}
	}
}

func TestOrderBy_UnknownKey(t *testing.T) {
	terms := orderBy(Options{SortKey: "bogus"}, representativeDisplay)
	assert.Equal(t, "s.name COLLATE NOCASE ASC", terms[0])
}

func TestEffectiveLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, effectiveLimit(0, 200))
	assert.Equal(t, DefaultLimit, effectiveLimit(-3, 200))
	assert.Equal(t, 10, effectiveLimit(10, 200))
	assert.Equal(t, 200, effectiveLimit(1000, 200))
	assert.Equal(t, 1000, effectiveLimit(1000, 0))
}
