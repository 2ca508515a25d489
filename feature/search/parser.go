package search

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	queryColors = "WUBRGC"
	// Strict mana value bounds are turned into inclusive ones.
	mvEpsilon = 0.0001
)

var mvToken = regexp.MustCompile(`(?i)^mv(<=|>=|=|<|>)(\d+(?:\.\d+)?)$`)

// Parse turns a compact query string into Filters.
//
//	bolt                  free text
//	"lightning bolt"      free text phrase
//	name:bolt n:bolt      name terms
//	o:"draw a card"       oracle text terms
//	t:instant             type line terms
//	c:wu id:wubrg         colors / color identity (letters WUBRGC)
//	r:rare set:m10        rarity / set code
//	mv<=3 mv:2            mana value
//
// Parse never fails. Unknown keys are kept as free text, and input that cannot be
// tokenized is split on whitespace and treated as free text.
func Parse(input string) (f Filters) {
	if strings.TrimSpace(input) == "" {
		return Filters{}
	}

	defer func() {
		if recover() != nil {
			f = Filters{TextTerms: strings.Fields(input)}
		}
	}()

	for _, token := range tokenize(input) {
		applyToken(&f, token)
	}
	return f
}

// tokenize splits on whitespace outside double quotes. Quotes may start anywhere in a
// token, so o:"draw a card" is one token. An unterminated quote runs to the end.
func tokenize(input string) []string {
	var tokens []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case unicode.IsSpace(r) && !inQuotes:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func unquote(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
}

func applyToken(f *Filters, token string) {
	if parseManaValue(f, token) {
		return
	}

	colon := strings.IndexByte(token, ':')
	quote := strings.IndexByte(token, '"')
	if colon <= 0 || (quote >= 0 && quote < colon) {
		f.TextTerms = addUnique(f.TextTerms, unquote(token))
		return
	}

	key := strings.ToLower(token[:colon])
	value := unquote(token[colon+1:])

	switch key {
	case "name", "n":
		f.NameTerms = addUnique(f.NameTerms, value)
	case "o":
		f.OracleTerms = addUnique(f.OracleTerms, value)
	case "t":
		f.TypeTerms = addUnique(f.TypeTerms, value)
	case "c":
		if colors := colorLetters(value, queryColors); len(colors) > 0 {
			f.Colors = colors
		}
	case "id":
		if colors := colorLetters(value, queryColors); len(colors) > 0 {
			f.ColorIdentity = colors
		}
	case "mv":
		if value != "" && strings.ContainsAny(value[:1], "<>=") {
			parseManaValue(f, "mv"+value)
		} else {
			parseManaValue(f, "mv="+value)
		}
	case "r":
		f.Rarities = addUnique(f.Rarities, strings.ToLower(value))
	case "set":
		f.SetCodes = addUnique(f.SetCodes, strings.ToUpper(value))
	default:
		f.TextTerms = addUnique(f.TextTerms, unquote(token))
	}
}

// parseManaValue applies an mv<OP><number> token and reports whether it was one.
func parseManaValue(f *Filters, token string) bool {
	m := mvToken.FindStringSubmatch(token)
	if m == nil {
		return false
	}
	v, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return false
	}

	switch m[1] {
	case "=":
		f.ManaValue.Eq = floatPtr(v)
	case "<":
		f.ManaValue.Max = floatPtr(v - mvEpsilon)
	case "<=":
		f.ManaValue.Max = floatPtr(v)
	case ">":
		f.ManaValue.Min = floatPtr(v + mvEpsilon)
	case ">=":
		f.ManaValue.Min = floatPtr(v)
	}
	return true
}
