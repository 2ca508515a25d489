package index

import (
	"encoding/json"
	"strings"

	"mana-vault/core/utils"
	"mana-vault/feature/canonical"
	"mana-vault/feature/catalog"
)

// aggregator keeps one representative printing per canonical key.
type aggregator struct {
	reps  map[string]*catalog.Printing
	order []string
}

func newAggregator() *aggregator {
	return &aggregator{reps: make(map[string]*catalog.Printing)}
}

// add offers p as representative of key and reports whether it was taken.
// A printing replaces the current one only with a strictly later release date;
// a missing date never replaces a present one, so the first seen wins all ties.
func (a *aggregator) add(key string, p catalog.Printing) bool {
	cur, ok := a.reps[key]
	if !ok {
		a.reps[key] = &p
		a.order = append(a.order, key)
		return true
	}
	if p.ReleaseDate != "" && (cur.ReleaseDate == "" || p.ReleaseDate > cur.ReleaseDate) {
		a.reps[key] = &p
		return true
	}
	return false
}

func (a *aggregator) len() int {
	return len(a.order)
}

// cards returns the canonical cards in first-seen key order, numbered from 1.
func (a *aggregator) cards() []Card {
	out := make([]Card, 0, len(a.order))
	for i, key := range a.order {
		out = append(out, newCard(int64(i+1), key, *a.reps[key]))
	}
	return out
}

func newCard(id int64, key string, p catalog.Printing) Card {
	card := Card{
		ID:                       id,
		CanonicalKey:             key,
		RepresentativePrintingID: p.ID,
		Name:                     p.Name,
		ASCIIName:                nullable(asciiName(p)),
		ManaCost:                 nullable(p.ManaCost),
		ManaValue:                p.ManaValue,
		TypeLine:                 nullable(p.TypeLine),
		OracleText:               nullable(p.OracleText),
		Colors:                   strings.Join(p.Colors, ""),
		ColorCount:               len(p.Colors),
		ColorIdentity:            strings.Join(p.ColorIdentity, ""),
		ColorIdentityCount:       len(p.ColorIdentity),
		Rarity:                   nullable(p.Rarity),
		Keywords:                 jsonList(p.Keywords),
		Types:                    jsonList(p.Types),
		Power:                    nullable(p.Power),
		PowerValue:               utils.ParseStat(p.Power),
		Toughness:                nullable(p.Toughness),
		ToughnessValue:           utils.ParseStat(p.Toughness),
		Loyalty:                  nullable(p.Loyalty),
		Artist:                   nullable(p.Artist),
		FlavorText:               nullable(p.Flavor),
		LatestSetCode:            nullable(p.SetCode),
		LatestReleaseDate:        nullable(p.ReleaseDate),
		LatestNumber:             nullable(p.Number),
	}
	if card.Name == "" {
		card.Name = p.ID
	}
	if rank, ok := RarityRank[p.Rarity]; ok {
		card.RarityRank = &rank
	}
	card.NumberValue, card.NumberSuffix = splitNumber(p.Number)
	return card
}

// asciiName falls back to the folded name when upstream has no ASCII spelling.
func asciiName(p catalog.Printing) string {
	if p.ASCIIName != "" {
		return p.ASCIIName
	}
	if folded := canonical.FoldText(p.Name); folded != p.Name {
		return folded
	}
	return ""
}

func newPrintingRef(key string, p catalog.Printing) PrintingRef {
	ref := PrintingRef{
		PrintingID:   p.ID,
		CanonicalKey: key,
		SetCode:      nullable(p.SetCode),
		ReleaseDate:  nullable(p.ReleaseDate),
		Number:       nullable(p.Number),
	}
	ref.NumberValue, ref.NumberSuffix = splitNumber(p.Number)
	return ref
}

func splitNumber(number string) (*int, *string) {
	if number == "" {
		return nil, nil
	}
	n, suffix := utils.SplitCollectorNumber(number)
	return n, &suffix
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func jsonList(items []string) *string {
	if len(items) == 0 {
		return nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
