package canonical

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	defaultLayout = "unknown"
	defaultSide   = "front"
	separator     = "::"
)

// Identity holds the fields of a printing that decide its canonical key.
// Empty strings mean the upstream value is absent.
type Identity struct {
	PrintingID         string
	ScryfallOracleID   string
	IdentifierOracleID string
	CardOracleID       string
	Name               string
	ASCIIName          string
	Layout             string
	Side               string
}

// OracleID returns the first present oracle identifier in priority order.
func (i Identity) OracleID() string {
	for _, id := range []string{i.ScryfallOracleID, i.IdentifierOracleID, i.CardOracleID} {
		if id = strings.TrimSpace(id); id != "" {
			return id
		}
	}
	return ""
}

// Key computes the canonical key of a printing.
//
// Printings carrying an oracle identifier are keyed by it. Otherwise the key is
// the normalized name joined with the lower-cased layout and side, e.g.
// "opt::normal::front". Point lookups and bulk rebuilds must both go through here.
func Key(id Identity) string {
	if oracle := id.OracleID(); oracle != "" {
		return oracle
	}

	name := firstNonBlank(id.ASCIIName, id.Name, id.PrintingID)
	layout := strings.ToLower(firstNonBlank(id.Layout, defaultLayout))
	side := strings.ToLower(firstNonBlank(id.Side, defaultSide))

	return NormalizeName(name) + separator + layout + separator + side
}

var foldMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lower-cases a card name, folds diacritics and collapses every
// run of non-alphanumeric characters into a single hyphen. Leading and trailing
// hyphens are trimmed. A name with no alphanumeric characters normalizes to its
// trimmed lower-cased self.
func NormalizeName(name string) string {
	trimmed := strings.ToLower(strings.TrimSpace(name))

	folded, _, err := transform.String(foldMarks, trimmed)
	if err != nil {
		folded = trimmed
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	if b.Len() == 0 {
		return trimmed
	}
	return b.String()
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

var ligatures = strings.NewReplacer(
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ß", "ss",
)

// FoldText strips diacritics and spells out ligatures, so "Lim-Dûl" becomes
// "Lim-Dul" and "Æther" becomes "AEther". Case is preserved.
func FoldText(s string) string {
	s = ligatures.Replace(s)
	folded, _, err := transform.String(foldMarks, s)
	if err != nil {
		return s
	}
	return folded
}
