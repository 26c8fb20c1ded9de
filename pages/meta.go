package pages

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout used when a Date value is rendered as text.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Kind tags the variant held by a Value.
type Kind int

const (
	KindString Kind = iota + 1
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDate:
		return "date"
	default:
		return "absent"
	}
}

// Value is a single metadata value: either a string or a date.
// The zero Value is absent.
type Value struct {
	kind Kind
	s    string
	t    time.Time
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// DateValue returns a date Value.
func DateValue(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Time returns the date held by v.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == KindDate
}

// String returns the textual form of v. Dates use DateLayout.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindDate:
		return v.t.Format(DateLayout)
	default:
		return ""
	}
}

// Meta is the metadata header of a page.
type Meta map[string]Value

// Lookup returns the value stored under key.
func (m Meta) Lookup(key string) (Value, bool) {
	v, ok := m[key]
	return v, ok && v.kind != 0
}

// Date returns the date stored under key. It is false for absent keys and
// for values that are not dates.
func (m Meta) Date(key string) (time.Time, bool) {
	v, ok := m.Lookup(key)
	if !ok {
		return time.Time{}, false
	}
	return v.Time()
}

// String returns the textual form of the value stored under key.
func (m Meta) String(key string) (string, bool) {
	v, ok := m.Lookup(key)
	if !ok {
		return "", false
	}
	return v.String(), true
}

// Get returns the textual value under key, or "" when absent.
func (m Meta) Get(key string) string {
	s, _ := m.String(key)
	return s
}

// MissingMetadataError reports a page that lacks a required metadata key.
type MissingMetadataError struct {
	Path string
	Key  string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("pages: %s: missing %q metadata", e.Path, e.Key)
}

func newMeta(raw map[string]any) Meta {
	m := make(Meta, len(raw))
	for k, v := range raw {
		m[k] = toValue(v)
	}
	return m
}

func toValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return StringValue("")
	case time.Time:
		return DateValue(x)
	case string:
		if t, ok := parseDate(x); ok {
			return DateValue(t)
		}
		return StringValue(x)
	default:
		return StringValue(fmt.Sprint(x))
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
