package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedDates is wrapped by every error ParseDateEntries returns.
var ErrMalformedDates = errors.New("malformed dates")

// Timestamp layouts accepted for a date entry, tried in order. Layouts
// without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DateEntry is one dated, optionally priced session of an event
type DateEntry struct {
	Date  time.Time `json:"date"`
	Price *float64  `json:"price,omitempty"`
}

type rawDateEntry struct {
	Date  json.RawMessage `json:"date"`
	Price json.RawMessage `json:"price"`
}

// ParseDateEntries decodes a JSON array of {date, price} objects and returns
// the entries sorted ascending by date.
func ParseDateEntries(raw string) ([]DateEntry, error) {
	var items []rawDateEntry
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDates, err)
	}

	entries := make([]DateEntry, 0, len(items))
	for i, item := range items {
		date, err := parseDateValue(item.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedDates, i, err)
		}
		price, err := parsePriceValue(item.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedDates, i, err)
		}
		if price != nil && *price < 0 {
			return nil, fmt.Errorf("%w: entry %d: price must not be negative", ErrMalformedDates, i)
		}
		entries = append(entries, DateEntry{Date: date, Price: price})
	}

	SortDateEntries(entries)
	return entries, nil
}

// SortDateEntries orders entries ascending by date. Entries with equal dates
// keep their relative order.
func SortDateEntries(entries []DateEntry) {
	slices.SortStableFunc(entries, func(a, b DateEntry) int {
		return a.Date.Compare(b.Date)
	})
}

// ParseTimestamp parses a date entry timestamp in any accepted layout.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseDateValue accepts a timestamp string or epoch milliseconds.
func parseDateValue(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, errors.New("date is required")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return time.Time{}, errors.New("date is required")
		}
		return ParseTimestamp(s)
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unsupported date value %s", raw)
}

// parsePriceValue accepts a number or a numeric string. Absent, null and
// empty-string prices mean no price.
func parsePriceValue(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unsupported price value %s", raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("price %q is not a number", s)
	}
	return &f, nil
}

// RawDates carries the client's dates field as unparsed text. Clients send
// either a JSON string holding the array or the array itself.
type RawDates struct {
	Text    string
	Present bool
}

// UnmarshalJSON implements json.Unmarshaler
func (d *RawDates) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = RawDates{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = RawDates{Text: s, Present: s != ""}
		return nil
	}

	*d = RawDates{Text: string(data), Present: true}
	return nil
}

// MarshalJSON implements json.Marshaler
func (d RawDates) MarshalJSON() ([]byte, error) {
	if !d.Present {
		return []byte("null"), nil
	}
	return json.Marshal(d.Text)
}
