package search

import (
	"slices"
	"strings"
	"unicode"

	"mana-vault/feature/canonical"
	"mana-vault/feature/index"
)

// display names the columns of the printing shown for a result: the
// representative printing, or the latest printing inside the requested sets.
type display struct {
	printingID, setCode, releaseDate, number, numberValue, numberSuffix string
}

var (
	representativeDisplay = display{
		printingID:   "s.representative_printing_id",
		setCode:      "s.latest_set_code",
		releaseDate:  "s.latest_release_date",
		number:       "s.latest_number",
		numberValue:  "s.number_value",
		numberSuffix: "s.number_suffix",
	}
	setScopedDisplay = display{
		printingID:   "d.printing_id",
		setCode:      "d.set_code",
		releaseDate:  "d.release_date",
		number:       "d.number",
		numberValue:  "d.number_value",
		numberSuffix: "d.number_suffix",
	}
)

// query accumulates SQL fragments and their bind arguments in text order.
type query struct {
	joins []string
	where []string
	args  []any
}

func (q *query) join(clause string, args ...any) {
	q.joins = append(q.joins, clause)
	q.args = append(q.args, args...)
}

func (q *query) and(clause string, args ...any) {
	q.where = append(q.where, clause)
	q.args = append(q.args, args...)
}

// Compile renders f and opts as a single SELECT over the index store. limitMax
// caps the page size.
func Compile(f Filters, opts Options, limitMax int) (string, []any) {
	q := &query{}
	disp := representativeDisplay

	if len(f.SetCodes) > 0 {
		disp = setScopedDisplay
		args := make([]any, 0, len(f.SetCodes))
		for _, code := range f.SetCodes {
			args = append(args, code)
		}
		q.join("JOIN "+index.TablePrintings+" d ON d.printing_id = ("+
			"SELECT p.printing_id FROM "+index.TablePrintings+" p"+
			" WHERE p.canonical_key = s.canonical_key AND p.set_code IN ("+placeholders(len(args))+")"+
			" ORDER BY (p.release_date IS NULL), p.release_date DESC, p.printing_id ASC LIMIT 1)", args...)
	}

	if match := matchExpression(f); match != "" {
		q.join("JOIN " + index.TableFTS + " ON " + index.TableFTS + ".docid = s.id")
		q.and(index.TableFTS+" MATCH ?", match)
	}

	colorClause(q, "s.colors", "s.color_count", f.Colors)
	colorClause(q, "s.color_identity", "s.color_identity_count", f.ColorIdentity)
	rangeClause(q, "s.mana_value", f.ManaValue)
	rangeClause(q, "s.power_value", f.Power)
	rangeClause(q, "s.toughness_value", f.Toughness)

	if len(f.Rarities) > 0 {
		args := make([]any, 0, len(f.Rarities))
		for _, r := range f.Rarities {
			args = append(args, r)
		}
		q.and("s.rarity IN ("+placeholders(len(args))+")", args...)
	}
	if len(f.CardTypes) > 0 {
		parts := make([]string, 0, len(f.CardTypes))
		args := make([]any, 0, len(f.CardTypes))
		for _, t := range f.CardTypes {
			parts = append(parts, "instr(lower(s.type_line), ?) > 0")
			args = append(args, strings.ToLower(t))
		}
		q.and("("+strings.Join(parts, " OR ")+")", args...)
	}
	if f.ManaCost != "" {
		q.and("instr(s.mana_cost, ?) > 0", f.ManaCost)
	}
	if f.Artist != "" {
		q.and("instr(lower(s.artist), ?) > 0", strings.ToLower(f.Artist))
	}
	if f.Flavor != "" {
		q.and("instr(lower(s.flavor_text), ?) > 0", strings.ToLower(f.Flavor))
	}

	var sb strings.Builder
	sb.WriteString("SELECT s.*, ")
	sb.WriteString(disp.printingID + " AS display_printing_id, ")
	sb.WriteString(disp.setCode + " AS display_set_code, ")
	sb.WriteString(disp.releaseDate + " AS display_release_date, ")
	sb.WriteString(disp.number + " AS display_number")
	sb.WriteString("\nFROM " + index.TableCards + " s")
	for _, j := range q.joins {
		sb.WriteString("\n" + j)
	}
	if len(q.where) > 0 {
		sb.WriteString("\nWHERE " + strings.Join(q.where, "\n  AND "))
	}
	sb.WriteString("\nORDER BY " + strings.Join(orderBy(opts, disp), ", "))
	sb.WriteString("\nLIMIT ? OFFSET ?")

	args := append(q.args, effectiveLimit(opts.Limit, limitMax), max(opts.Offset, 0))
	return sb.String(), args
}

// colorClause ORs together the colorless test, the multicolor test and the
// requirement that every concrete color is present.
func colorClause(q *query, column, count string, selected []string) {
	if len(selected) == 0 {
		return
	}

	var parts []string
	var concrete []string
	var args []any
	for _, c := range selected {
		switch c {
		case Colorless:
			parts = append(parts, column+" = ''")
		case Multicolor:
			parts = append(parts, count+" > 1")
		default:
			concrete = append(concrete, "instr("+column+", ?) > 0")
			args = append(args, c)
		}
	}
	if len(concrete) > 0 {
		parts = append([]string{"(" + strings.Join(concrete, " AND ") + ")"}, parts...)
	}
	q.and("("+strings.Join(parts, " OR ")+")", args...)
}

func rangeClause(q *query, column string, r Range) {
	if r.Eq != nil {
		q.and(column+" = ?", *r.Eq)
	}
	if r.Min != nil {
		q.and(column+" >= ?", *r.Min)
	}
	if r.Max != nil {
		q.and(column+" <= ?", *r.Max)
	}
}

func orderBy(opts Options, disp display) []string {
	key := opts.SortKey
	if _, ok := defaultDirs[key]; !ok {
		key = SortName
	}
	dir := opts.SortDir
	if dir != Asc && dir != Desc {
		dir = key.DefaultDir()
	}
	d := " " + strings.ToUpper(string(dir))

	nullsLast := func(col string) []string {
		return []string{"(" + col + " IS NULL)", col + d}
	}

	var terms []string
	switch key {
	case SortName:
		terms = []string{"s.name COLLATE NOCASE" + d}
	case SortReleaseDate:
		terms = nullsLast(disp.releaseDate)
	case SortSetNumber:
		terms = append(nullsLast(disp.setCode), nullsLast(disp.numberValue)...)
		terms = append(terms, disp.numberSuffix+d)
	case SortRarity:
		terms = nullsLast("s.rarity_rank")
	case SortColor:
		terms = []string{"s.color_count" + d, "s.colors" + d}
	case SortManaValue:
		terms = nullsLast("s.mana_value")
	case SortPower:
		terms = nullsLast("s.power_value")
	case SortToughness:
		terms = nullsLast("s.toughness_value")
	case SortArtist:
		terms = []string{"(s.artist IS NULL)", "s.artist COLLATE NOCASE" + d}
	}

	for _, tie := range []string{"s.name COLLATE NOCASE ASC", disp.setCode + " ASC", "s.canonical_key ASC"} {
		if !slices.Contains(terms, tie) {
			terms = append(terms, tie)
		}
	}
	return terms
}

func effectiveLimit(limit, limitMax int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limitMax > 0 && limit > limitMax {
		limit = limitMax
	}
	return limit
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// matchExpression renders the text terms as an FTS4 query. Terms are folded the
// way names are indexed, reduced to lowercase letter and digit runs and joined
// by spaces, which FTS treats as AND.
// Column filters cannot carry phrases, so a multi-word column term becomes one
// column filter per word.
func matchExpression(f Filters) string {
	var parts []string
	for _, t := range f.TextTerms {
		words := ftsWords(t)
		switch len(words) {
		case 0:
		case 1:
			parts = append(parts, words[0])
		default:
			parts = append(parts, `"`+strings.Join(words, " ")+`"`)
		}
	}

	columnTerms := func(column string, terms []string) {
		for _, t := range terms {
			for _, w := range ftsWords(t) {
				parts = append(parts, column+":"+w)
			}
		}
	}
	columnTerms("name", f.NameTerms)
	columnTerms("type", f.TypeTerms)
	columnTerms("text", f.OracleTerms)

	return strings.Join(parts, " ")
}

func ftsWords(term string) []string {
	return strings.FieldsFunc(strings.ToLower(canonical.FoldText(term)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
