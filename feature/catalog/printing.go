package catalog

import (
	"strings"

	"mana-vault/core/utils"
	"mana-vault/feature/canonical"
)

// Printing is one upstream printing row. Empty strings and nil pointers mean the value
// is absent from the snapshot.
type Printing struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	ASCIIName          string   `json:"asciiName,omitempty"`
	SetCode            string   `json:"setCode,omitempty"`
	Number             string   `json:"number,omitempty"`
	ReleaseDate        string   `json:"releaseDate,omitempty"`
	Rarity             string   `json:"rarity,omitempty"`
	ManaCost           string   `json:"manaCost,omitempty"`
	ManaValue          *float64 `json:"manaValue,omitempty"`
	TypeLine           string   `json:"typeLine,omitempty"`
	OracleText         string   `json:"oracleText,omitempty"`
	Colors             []string `json:"colors"`
	ColorIdentity      []string `json:"colorIdentity"`
	Keywords           []string `json:"keywords,omitempty"`
	Types              []string `json:"types,omitempty"`
	Layout             string   `json:"layout,omitempty"`
	Side               string   `json:"side,omitempty"`
	Power              string   `json:"power,omitempty"`
	Toughness          string   `json:"toughness,omitempty"`
	Loyalty            string   `json:"loyalty,omitempty"`
	Artist             string   `json:"artist,omitempty"`
	Flavor             string   `json:"flavor,omitempty"`
	ScryfallOracleID   string   `json:"scryfallOracleId,omitempty"`
	IdentifierOracleID string   `json:"identifierOracleId,omitempty"`
	CardOracleID       string   `json:"cardOracleId,omitempty"`
}

// Identity returns the fields the canonical key is derived from.
func (p Printing) Identity() canonical.Identity {
	return canonical.Identity{
		PrintingID:         p.ID,
		ScryfallOracleID:   p.ScryfallOracleID,
		IdentifierOracleID: p.IdentifierOracleID,
		CardOracleID:       p.CardOracleID,
		Name:               p.Name,
		ASCIIName:          p.ASCIIName,
		Layout:             p.Layout,
		Side:               p.Side,
	}
}

var colorOrder = []string{"W", "U", "B", "R", "G"}

// SortColors upper-cases color letters, drops anything outside WUBRG and returns
// them in WUBRG order without duplicates.
func SortColors(colors []string) []string {
	seen := make(map[string]bool, len(colors))
	for _, c := range colors {
		seen[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	out := make([]string, 0, len(colors))
	for _, c := range colorOrder {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// printingFromRow converts a scanned row keyed by logical field name.
func printingFromRow(row map[string]any) Printing {
	str := func(field string) string {
		return strings.TrimSpace(utils.ToString(row[field]))
	}
	return Printing{
		ID:                 str(FieldID),
		Name:               str(FieldName),
		ASCIIName:          str(FieldASCIIName),
		SetCode:            strings.ToUpper(str(FieldSetCode)),
		Number:             str(FieldNumber),
		ReleaseDate:        str(FieldReleaseDate),
		Rarity:             strings.ToLower(str(FieldRarity)),
		ManaCost:           str(FieldManaCost),
		ManaValue:          utils.ToFloatPtr(row[FieldManaValue]),
		TypeLine:           str(FieldTypeLine),
		OracleText:         str(FieldOracleText),
		Colors:             SortColors(utils.StringList(row[FieldColors])),
		ColorIdentity:      SortColors(utils.StringList(row[FieldColorIdentity])),
		Keywords:           utils.StringList(row[FieldKeywords]),
		Types:              utils.StringList(row[FieldTypes]),
		Layout:             str(FieldLayout),
		Side:               str(FieldSide),
		Power:              str(FieldPower),
		Toughness:          str(FieldToughness),
		Loyalty:            str(FieldLoyalty),
		Artist:             str(FieldArtist),
		Flavor:             str(FieldFlavor),
		ScryfallOracleID:   str(FieldScryfallOracleID),
		IdentifierOracleID: str(FieldIdentifierOracleID),
		CardOracleID:       str(FieldCardOracleID),
	}
}

// Set is a summary of one upstream set.
type Set struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	Type        string `json:"type,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
}

// Ruling is one rules clarification for a printing.
type Ruling struct {
	Date   string `json:"date,omitempty"`
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// Legality is the status of a printing in one format.
type Legality struct {
	Format string `json:"format"`
	Status string `json:"status"`
}
