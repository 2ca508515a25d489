package search

import "strings"

// Range is an inclusive numeric filter. Nil bounds are inactive.
type Range struct {
	Eq  *float64 `json:"eq,omitempty"`
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Active reports whether any bound is set.
func (r Range) Active() bool {
	return r.Eq != nil || r.Min != nil || r.Max != nil
}

// Filters is the parsed form of a search request.
type Filters struct {
	NameTerms     []string `json:"nameTerms,omitempty"`
	OracleTerms   []string `json:"oracleTerms,omitempty"`
	TypeTerms     []string `json:"typeTerms,omitempty"`
	TextTerms     []string `json:"textTerms,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	ColorIdentity []string `json:"colorIdentity,omitempty"`
	ManaValue     Range    `json:"manaValue"`
	ManaCost      string   `json:"manaCost,omitempty"`
	Rarities      []string `json:"rarities,omitempty"`
	SetCodes      []string `json:"setCodes,omitempty"`
	CardTypes     []string `json:"cardTypes,omitempty"`
	Power         Range    `json:"power"`
	Toughness     Range    `json:"toughness"`
	Artist        string   `json:"artist,omitempty"`
	Flavor        string   `json:"flavor,omitempty"`
}

// Pseudo colors accepted in color filters.
const (
	Colorless  = "C"
	Multicolor = "M"
)

// colorLetters extracts the recognized color letters of raw, upper-cased and
// deduplicated in input order.
func colorLetters(raw, allowed string) []string {
	var out []string
	seen := map[rune]bool{}
	for _, r := range strings.ToUpper(raw) {
		if strings.ContainsRune(allowed, r) && !seen[r] {
			seen[r] = true
			out = append(out, string(r))
		}
	}
	return out
}

func addUnique(list []string, value string) []string {
	if value == "" {
		return list
	}
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func floatPtr(v float64) *float64 {
	return &v
}
