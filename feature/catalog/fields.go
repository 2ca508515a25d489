package catalog

import (
	"context"
	"fmt"
	"strings"

	"mana-vault/core/database"
)

// Upstream tables read by the catalog.
const (
	TableCards       = "cards"
	TableSets        = "sets"
	TableIdentifiers = "cardIdentifiers"
	TableRulings     = "cardRulings"
	TableLegalities  = "cardLegalities"
)

var tableAliases = map[string]string{
	TableCards:       "c",
	TableSets:        "s",
	TableIdentifiers: "ci",
}

// Origin is one place a logical field may be read from.
type Origin struct {
	Table      string
	Candidates []string
}

// Field maps a logical printing field onto its possible physical columns.
// Sources are coalesced in order; within a source the first present candidate wins.
type Field struct {
	Name    string
	Sources []Origin
}

func from(table string, candidates ...string) Origin {
	return Origin{Table: table, Candidates: candidates}
}

// Logical field names of a printing row.
const (
	FieldID                 = "id"
	FieldName               = "name"
	FieldASCIIName          = "asciiName"
	FieldSetCode            = "setCode"
	FieldNumber             = "number"
	FieldReleaseDate        = "releaseDate"
	FieldRarity             = "rarity"
	FieldManaCost           = "manaCost"
	FieldManaValue          = "manaValue"
	FieldTypeLine           = "typeLine"
	FieldOracleText         = "oracleText"
	FieldColors             = "colors"
	FieldColorIdentity      = "colorIdentity"
	FieldKeywords           = "keywords"
	FieldTypes              = "types"
	FieldLayout             = "layout"
	FieldSide               = "side"
	FieldPower              = "power"
	FieldToughness          = "toughness"
	FieldLoyalty            = "loyalty"
	FieldArtist             = "artist"
	FieldFlavor             = "flavor"
	FieldScryfallOracleID   = "scryfallOracleId"
	FieldIdentifierOracleID = "identifierOracleId"
	FieldCardOracleID       = "cardOracleId"
)

// PrintingFields is the declarative projection of one upstream printing row.
var PrintingFields = []Field{
	{FieldID, []Origin{from(TableCards, "uuid", "id")}},
	{FieldName, []Origin{from(TableCards, "name", "faceName")}},
	{FieldASCIIName, []Origin{from(TableCards, "asciiName")}},
	{FieldSetCode, []Origin{from(TableCards, "setCode", "set_code")}},
	{FieldNumber, []Origin{from(TableCards, "number", "collectorNumber")}},
	{FieldReleaseDate, []Origin{from(TableCards, "originalReleaseDate"), from(TableSets, "releaseDate")}},
	{FieldRarity, []Origin{from(TableCards, "rarity")}},
	{FieldManaCost, []Origin{from(TableCards, "manaCost")}},
	{FieldManaValue, []Origin{from(TableCards, "manaValue", "convertedManaCost", "cmc")}},
	{FieldTypeLine, []Origin{from(TableCards, "type", "typeLine")}},
	{FieldOracleText, []Origin{from(TableCards, "text", "originalText")}},
	{FieldColors, []Origin{from(TableCards, "colors")}},
	{FieldColorIdentity, []Origin{from(TableCards, "colorIdentity")}},
	{FieldKeywords, []Origin{from(TableCards, "keywords")}},
	{FieldTypes, []Origin{from(TableCards, "types")}},
	{FieldLayout, []Origin{from(TableCards, "layout")}},
	{FieldSide, []Origin{from(TableCards, "side")}},
	{FieldPower, []Origin{from(TableCards, "power")}},
	{FieldToughness, []Origin{from(TableCards, "toughness")}},
	{FieldLoyalty, []Origin{from(TableCards, "loyalty")}},
	{FieldArtist, []Origin{from(TableCards, "artist")}},
	{FieldFlavor, []Origin{from(TableCards, "flavorText", "flavor")}},
	{FieldScryfallOracleID, []Origin{from(TableIdentifiers, "scryfallOracleId")}},
	{FieldIdentifierOracleID, []Origin{from(TableIdentifiers, "oracleId")}},
	{FieldCardOracleID, []Origin{from(TableCards, "oracleId")}},
}

// ResolvedField is a logical field bound to the physical columns present right now.
type ResolvedField struct {
	Field   Field
	Columns []database.Column
}

// Present reports whether at least one physical column backs the field.
func (r ResolvedField) Present() bool {
	return len(r.Columns) > 0
}

// Expr renders the SQL expression of the field using the catalog table aliases.
func (r ResolvedField) Expr() string {
	switch len(r.Columns) {
	case 0:
		return "NULL"
	case 1:
		return r.Columns[0].Expr(tableAliases[r.Columns[0].Table])
	}
	parts := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		parts[i] = col.Expr(tableAliases[col.Table])
	}
	return "COALESCE(" + strings.Join(parts, ", ") + ")"
}

// projection is the compiled SELECT for printing rows against one snapshot.
type projection struct {
	fields []ResolvedField
	sql    string
	idExpr string
}

// resolveFields binds every field to the live schema. Columns of tables that cannot
// be joined are treated as missing.
func resolveFields(ctx context.Context, intro *database.Introspector, joinable map[string]bool) []ResolvedField {
	resolved := make([]ResolvedField, 0, len(PrintingFields))
	for _, field := range PrintingFields {
		rf := ResolvedField{Field: field}
		for _, src := range field.Sources {
			if !joinable[src.Table] {
				continue
			}
			if col := intro.Pick(ctx, src.Table, src.Candidates...); col.Present() {
				rf.Columns = append(rf.Columns, col)
			}
		}
		resolved = append(resolved, rf)
	}
	return resolved
}

// buildProjection compiles the printing SELECT. It returns false when the snapshot has
// no cards table or no usable printing id column.
func buildProjection(ctx context.Context, intro *database.Introspector) (projection, bool) {
	idCol := intro.Pick(ctx, TableCards, "uuid", "id")
	if !idCol.Present() {
		return projection{}, false
	}

	joinable := map[string]bool{TableCards: true}
	var joins []string

	setCodeCol := intro.Pick(ctx, TableCards, "setCode", "set_code")
	setsCodeCol := intro.Pick(ctx, TableSets, "code")
	if setCodeCol.Present() && setsCodeCol.Present() {
		joinable[TableSets] = true
		joins = append(joins, fmt.Sprintf("LEFT JOIN %s s ON %s = %s",
			TableSets, setsCodeCol.Expr("s"), setCodeCol.Expr("c")))
	}

	identUUID := intro.Pick(ctx, TableIdentifiers, "uuid")
	if identUUID.Present() {
		joinable[TableIdentifiers] = true
		joins = append(joins, fmt.Sprintf("LEFT JOIN %s ci ON %s = %s",
			TableIdentifiers, identUUID.Expr("ci"), idCol.Expr("c")))
	}

	fields := resolveFields(ctx, intro, joinable)
	selects := make([]string, len(fields))
	for i, f := range fields {
		selects[i] = fmt.Sprintf("%s AS %s", f.Expr(), f.Field.Name)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(selects, ", "))
	b.WriteString(" FROM ")
	b.WriteString(TableCards)
	b.WriteString(" c")
	for _, join := range joins {
		b.WriteString(" ")
		b.WriteString(join)
	}

	return projection{fields: fields, sql: b.String(), idExpr: idCol.Expr("c")}, true
}
