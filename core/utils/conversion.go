package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ToString converts various types to string. Nil becomes the empty string and
// timestamps are rendered as dates.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToFloatPtr converts numeric values and numeric strings to *float64.
// Anything else, including nil, yields nil.
func ToFloatPtr(val any) *float64 {
	var f float64
	switch v := val.(type) {
	case nil:
		return nil
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case string, []byte:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(ToString(v)), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

// StringList decodes a list column. Snapshots store lists either as a JSON array
// or as a comma separated string; both are accepted. Blank entries are dropped.
func StringList(val any) []string {
	s := strings.TrimSpace(ToString(val))
	if s == "" {
		return nil
	}

	var raw []string
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			raw = strings.Split(strings.Trim(s, "[]"), ",")
		}
	} else {
		raw = strings.Split(s, ",")
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.Trim(strings.TrimSpace(item), `"`)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var statPattern = regexp.MustCompile(`^[-+]?\d+(\.\d+)?$`)

// ParseStat parses a power, toughness or loyalty value.
// Only plain numbers are numeric; values such as "*" or "1+*" yield nil.
func ParseStat(s string) *float64 {
	s = strings.TrimSpace(s)
	if !statPattern.MatchString(s) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

var collectorPattern = regexp.MustCompile(`^(\d+)(.*)$`)

// SplitCollectorNumber splits a collector number such as "123a" into its numeric
// part and suffix. Numbers without leading digits have no numeric part.
func SplitCollectorNumber(s string) (*int, string) {
	m := collectorPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, s
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, s
	}
	return &n, m[2]
}
