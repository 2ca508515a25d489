package search

import (
	"strconv"
	"strings"

	"mana-vault/core/utils"
)

const (
	DefaultLimit = 50
	paramColors  = "WUBRGCM"
)

// Options controls ordering and paging.
type Options struct {
	SortKey SortKey `json:"sortKey" yaml:"sortKey"`
	SortDir SortDir `json:"sortDir" yaml:"sortDir"`
	Limit   int     `json:"limit" yaml:"limit"`
	Offset  int     `json:"offset" yaml:"offset"`
}

// Request is a parsed search request.
type Request struct {
	Filters Filters
	Options Options
}

// FromParams builds a Request from named parameters. The compact query in "q" is
// parsed first and structured parameters are applied over it. Unparseable values
// are ignored.
func FromParams(get func(string) string) Request {
	param := func(names ...string) string {
		for _, name := range names {
			if v := strings.TrimSpace(get(name)); v != "" {
				return v
			}
		}
		return ""
	}

	f := Parse(get("q"))

	if v := param("name"); v != "" {
		f.NameTerms = addUnique(f.NameTerms, v)
	}
	if v := param("oracle", "oracleText"); v != "" {
		f.OracleTerms = addUnique(f.OracleTerms, v)
	}
	if v := param("type", "typeLine"); v != "" {
		f.TypeTerms = addUnique(f.TypeTerms, v)
	}
	if colors := colorLetters(param("colors"), paramColors); len(colors) > 0 {
		f.Colors = colors
	}
	if colors := colorLetters(param("identity", "colorIdentity"), paramColors); len(colors) > 0 {
		f.ColorIdentity = colors
	}
	for _, r := range utils.StringList(param("rarity", "rarities")) {
		f.Rarities = addUnique(f.Rarities, strings.ToLower(r))
	}
	for _, s := range utils.StringList(param("set", "sets")) {
		f.SetCodes = addUnique(f.SetCodes, strings.ToUpper(s))
	}
	for _, t := range utils.StringList(param("types")) {
		f.CardTypes = addUnique(f.CardTypes, strings.ToLower(t))
	}
	if v := param("manaCost"); v != "" {
		f.ManaCost = v
	}
	if v := param("artist"); v != "" {
		f.Artist = v
	}
	if v := param("flavor"); v != "" {
		f.Flavor = v
	}

	setBound(&f.ManaValue.Min, param("mvMin"))
	setBound(&f.ManaValue.Max, param("mvMax"))
	setBound(&f.Power.Min, param("powerMin"))
	setBound(&f.Power.Max, param("powerMax"))
	setBound(&f.Toughness.Min, param("toughnessMin"))
	setBound(&f.Toughness.Max, param("toughnessMax"))

	key, dir := ResolveSort(param("sortKey"), param("sortDir"), param("sort"))
	return Request{
		Filters: f,
		Options: Options{
			SortKey: key,
			SortDir: dir,
			Limit:   positiveInt(param("limit")),
			Offset:  positiveInt(param("offset")),
		},
	}
}

func setBound(dst **float64, raw string) {
	if raw == "" {
		return
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*dst = &v
	}
}

func positiveInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
