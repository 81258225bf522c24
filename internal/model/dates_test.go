package model

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
	"time"
)

func TestParseDateEntries_SortsAscending(t *testing.T) {
	t.Parallel()

	entries, err := ParseDateEntries(`[
		{"date": "2021-08-04T11:00:00", "price": 20},
		{"date": "2021-08-02T11:00:00"}
	]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	want := time.Date(2021, 8, 2, 11, 0, 0, 0, time.UTC)
	if !entries[0].Date.Equal(want) {
		t.Errorf("expected 2021-08-02 first, got %v", entries[0].Date)
	}
	if entries[0].Price != nil {
		t.Errorf("expected no price on first entry, got %v", *entries[0].Price)
	}
	if entries[1].Price == nil || *entries[1].Price != 20 {
		t.Error("expected price to stay with its date")
	}
}

func TestParseDateEntries_Formats(t *testing.T) {
	t.Parallel()

	want := time.Date(2021, 8, 2, 11, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", `[{"date":"2021-08-02T11:00:00Z"}]`, want},
		{"rfc3339 offset", `[{"date":"2021-08-02T13:00:00+02:00"}]`, want},
		{"fractional", `[{"date":"2021-08-02T11:00:00.000Z"}]`, want},
		{"local fractional", `[{"date":"2021-08-02T11:00:00.000"}]`, want},
		{"no zone", `[{"date":"2021-08-02T11:00:00"}]`, want},
		{"minutes", `[{"date":"2021-08-02T11:00"}]`, want},
		{"date only", `[{"date":"2021-08-02"}]`, time.Date(2021, 8, 2, 0, 0, 0, 0, time.UTC)},
		{"epoch millis", `[{"date":1627902000000}]`, want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entries, err := ParseDateEntries(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !entries[0].Date.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, entries[0].Date)
			}
			if entries[0].Date.Location() != time.UTC {
				t.Errorf("expected UTC, got %v", entries[0].Date.Location())
			}
		})
	}
}

func TestParseDateEntries_Empty(t *testing.T) {
	t.Parallel()

	entries, err := ParseDateEntries(`[]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", entries)
	}
}

func TestParseDateEntries_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `not json`},
		{"object not array", `{"date":"2021-08-02"}`},
		{"missing date", `[{"price":3}]`},
		{"null date", `[{"date":null}]`},
		{"empty date", `[{"date":""}]`},
		{"bad date", `[{"date":"next tuesday"}]`},
		{"bool date", `[{"date":true}]`},
		{"negative price", `[{"date":"2021-08-02","price":-5}]`},
		{"non-numeric string price", `[{"date":"2021-08-02","price":"free"}]`},
		{"negative string price", `[{"date":"2021-08-02","price":"-5"}]`},
		{"nan string price", `[{"date":"2021-08-02","price":"NaN"}]`},
		{"bool price", `[{"date":"2021-08-02","price":true}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDateEntries(tt.raw)
			if !errors.Is(err, ErrMalformedDates) {
				t.Errorf("expected ErrMalformedDates, got %v", err)
			}
		})
	}
}

func TestParseDateEntries_PriceForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price string
		want  *float64
	}{
		{"number", `10`, float64Ptr(10)},
		{"numeric string", `"10"`, float64Ptr(10)},
		{"decimal string with spaces", `" 12.5 "`, float64Ptr(12.5)},
		{"zero string", `"0"`, float64Ptr(0)},
		{"null", `null`, nil},
		{"empty string", `""`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entries, err := ParseDateEntries(`[{"date":"2021-08-02","price":` + tt.price + `}]`)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			got := entries[0].Price
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("expected no price, got %v", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("expected price %v, got %v", *tt.want, got)
			}
		})
	}
}

func float64Ptr(f float64) *float64 { return &f }

func TestSortDateEntries_SortedAndIdempotent(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	for round := 0; round < 50; round++ {
		n := rng.Intn(20)
		entries := make([]DateEntry, n)
		for i := range entries {
			entries[i] = DateEntry{Date: base.Add(time.Duration(rng.Intn(10)) * time.Hour)}
		}

		SortDateEntries(entries)
		if !slices.IsSortedFunc(entries, func(a, b DateEntry) int { return a.Date.Compare(b.Date) }) {
			t.Fatalf("round %d: entries not sorted: %v", round, entries)
		}

		again := slices.Clone(entries)
		SortDateEntries(again)
		if !slices.Equal(entries, again) {
			t.Fatalf("round %d: sorting a sorted list changed it", round)
		}
	}
}

func TestSortDateEntries_Stable(t *testing.T) {
	t.Parallel()

	same := time.Date(2021, 8, 2, 0, 0, 0, 0, time.UTC)
	a, b := 1.0, 2.0
	entries := []DateEntry{
		{Date: same.Add(time.Hour)},
		{Date: same, Price: &a},
		{Date: same, Price: &b},
	}

	SortDateEntries(entries)
	if *entries[0].Price != 1 || *entries[1].Price != 2 {
		t.Error("expected equal dates to keep their input order")
	}
}

func TestRawDates_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := RawDates{}.MarshalJSON()
	if err != nil || string(data) != "null" {
		t.Errorf("expected null, got %s (%v)", data, err)
	}

	data, err = RawDates{Text: "[]", Present: true}.MarshalJSON()
	if err != nil || string(data) != `"[]"` {
		t.Errorf(`expected "[]", got %s (%v)`, data, err)
	}
}
