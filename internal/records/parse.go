package records

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// CoerceNumber converts an arbitrary JSON value to a finite float64.
// Numbers are kept as-is, numeric strings are parsed with locale separator
// handling, everything else (null, objects, garbage) degrades to 0.
func CoerceNumber(value any) float64 {
	switch v := value.(type) {
	case float64:
		return finiteOrZero(v)
	case float32:
		return finiteOrZero(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	case string:
		if f, ok := ParseLocaleNumber(v); ok {
			return f
		}
		return 0
	default:
		return 0
	}
}

// CoerceString converts an arbitrary JSON value to a display string, using
// the sentinel for null, absent or blank values.
func CoerceString(value any, sentinel string) string {
	s, ok := value.(string)
	if !ok {
		return sentinel
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return sentinel
	}
	return s
}

// ParseLocaleNumber parses a numeric string where the comma is the decimal
// separator and the dot may be a thousands separator: "1.234,56" -> 1234.56,
// "1,5" -> 1.5. Plain dot-decimal strings ("1.5") still parse. Currency
// prefixes and percent suffixes are tolerated.
func ParseLocaleNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		// The rightmost separator is the decimal one; the other is grouping.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		if strings.Count(s, ",") > 1 {
			// Multiple commas can only be grouping: "1,234,567"
			s = strings.ReplaceAll(s, ",", "")
		} else {
			// A single comma is the decimal separator: "1,5" -> 1.5
			s = strings.Replace(s, ",", ".", 1)
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// dayKeyLayout is the canonical calendar-day key format.
const dayKeyLayout = "2006-01-02"

// DayKey extracts a YYYY-MM-DD day key from a date value, truncating any
// time-of-day component. Accepts time.Time, bare ISO dates and timestamps.
func DayKey(value any) (string, bool) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(dayKeyLayout), true
	case string:
		s := strings.TrimSpace(v)
		if len(s) < len(dayKeyLayout) {
			return "", false
		}
		day := s[:len(dayKeyLayout)]
		if _, err := time.Parse(dayKeyLayout, day); err != nil {
			return "", false
		}
		return day, true
	default:
		return "", false
	}
}

// ParseTimestamp parses an updated-at value, accepting RFC 3339 timestamps,
// bare dates and time.Time.
func ParseTimestamp(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", dayKeyLayout} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
