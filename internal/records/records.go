// Package records defines the normalization boundary between loosely-typed
// upstream payloads and the strictly-typed records the aggregation pipeline
// consumes. Upstream systems deliver numeric fields as numbers, locale
// formatted strings or nulls; nothing past Normalize is ever NaN, null or
// missing.
package records

import (
	"time"
)

// SentinelNoRecord is the default for nullable string fields that identify
// people or entities (top client, top vendor).
const SentinelNoRecord = "Sem registro"

// FieldKind discriminates how a schema field is coerced.
type FieldKind int

const (
	NumberField FieldKind = iota
	StringField
)

// Field describes one schema field of a business system's records.
type Field struct {
	Name     string
	Kind     FieldKind
	Sentinel string // default for empty string fields; unused for numbers
}

// Schema describes the record layout of one business system.
type Schema struct {
	DateField      string // defaults to "ref_date"
	UpdatedAtField string // defaults to "updated_at"
	Fields         []Field
}

func (s Schema) dateField() string {
	if s.DateField == "" {
		return "ref_date"
	}
	return s.DateField
}

func (s Schema) updatedAtField() string {
	if s.UpdatedAtField == "" {
		return "updated_at"
	}
	return s.UpdatedAtField
}

// Raw is one loosely-typed record as decoded from upstream JSON.
type Raw map[string]any

// Normalized is a strictly-typed record. Every schema number field is present
// and finite; every schema string field is present and non-empty.
type Normalized struct {
	Date      string // YYYY-MM-DD day key, "" when the source date was unusable
	UpdatedAt time.Time
	Numbers   map[string]float64
	Strings   map[string]string
}

// Normalize coerces a raw record against a schema. It is pure and total:
// unparseable numbers degrade to 0, absent strings to their sentinel, and an
// unusable date leaves Date empty so the aggregator can skip the record.
func Normalize(schema Schema, raw Raw) Normalized {
	out := Normalized{
		Numbers: make(map[string]float64, len(schema.Fields)),
		Strings: make(map[string]string),
	}

	if day, ok := DayKey(raw[schema.dateField()]); ok {
		out.Date = day
	}
	if ts, ok := ParseTimestamp(raw[schema.updatedAtField()]); ok {
		out.UpdatedAt = ts
	}

	for _, field := range schema.Fields {
		value := raw[field.Name]
		switch field.Kind {
		case NumberField:
			out.Numbers[field.Name] = CoerceNumber(value)
		case StringField:
			sentinel := field.Sentinel
			if sentinel == "" {
				sentinel = SentinelNoRecord
			}
			out.Strings[field.Name] = CoerceString(value, sentinel)
		}
	}

	return out
}

// NormalizeAll applies Normalize to a batch.
func NormalizeAll(schema Schema, raws []Raw) []Normalized {
	out := make([]Normalized, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(schema, raw)
	}
	return out
}
