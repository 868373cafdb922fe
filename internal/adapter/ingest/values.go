package ingest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type object map[string]json.RawMessage

func asObject(raw json.RawMessage) (object, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, false
	}
	return o, true
}

func asArray(raw json.RawMessage) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}
	return arr
}

// first returns the first present, non-null field among keys.
func (o object) first(keys ...string) json.RawMessage {
	for _, k := range keys {
		v, ok := o[k]
		if !ok {
			continue
		}
		if t := bytes.TrimSpace(v); len(t) == 0 || bytes.Equal(t, []byte("null")) {
			continue
		}
		return v
	}
	return nil
}

// text reads a string or number as text.
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return strings.TrimSpace(s)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(raw)
	}
	return ""
}

// scalarID reads an id that may be a string, a number or {"$oid": "..."}.
func scalarID(raw json.RawMessage) string {
	if o, ok := asObject(raw); ok {
		return text(o.first("$oid"))
	}
	return text(raw)
}

// idOf applies the id ?? _id ?? serviceId precedence (or whatever keys are given).
func (o object) idOf(keys ...string) string {
	for _, k := range keys {
		if id := scalarID(o[k]); id != "" {
			return id
		}
	}
	return ""
}

// amount reads a number or a numeric string; anything else is zero.
func amount(raw json.RawMessage) decimal.Decimal {
	s := text(raw)
	if s == "" {
		return decimal.Zero
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

func integer(raw json.RawMessage) int {
	s := text(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func boolish(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("true")) {
		return true
	}
	switch strings.ToLower(text(raw)) {
	case "true", "yes", "y", "1", "on":
		return true
	}
	return false
}

var zonedLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z0700", "2006-01-02T15:04:05Z0700"}

var wallLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"01/02/2006",
}

// instant reads RFC3339 timestamps, offset-less timestamps and plain dates
// (as wall time in loc), epoch milliseconds and {"$date": ...}. Unparseable
// values become the zero time.
func instant(raw json.RawMessage, loc *time.Location) time.Time {
	if o, ok := asObject(raw); ok {
		return instant(o.first("$date"), loc)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return time.Time{}
	}
	if raw[0] != '"' {
		ms, err := strconv.ParseInt(text(raw), 10, 64)
		if err != nil || ms == 0 {
			return time.Time{}
		}
		return time.UnixMilli(ms).In(loc)
	}

	s := text(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	for _, layout := range wallLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
