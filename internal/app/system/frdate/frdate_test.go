package frdate

import (
	"testing"
	"time"
)

func TestLong(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC), "16 octobre 2026"},
		{time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), "1 février 2025"},
		{time.Date(2024, time.August, 31, 23, 59, 0, 0, time.UTC), "31 août 2024"},
	}
	for _, tt := range tests {
		if got := Long(tt.date); got != tt.want {
			t.Errorf("Long(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestISO(t *testing.T) {
	d := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	if got := ISO(d); got != "2026-03-05" {
		t.Errorf("ISO() = %q", got)
	}
}

func TestParseLong(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"16 octobre 2026", "2026-10-16", false},
		{"1er février 2025", "2025-02-01", false},
		{"31 Août 2024", "2024-08-31", false},
		{"31 février 2024", "", true},
		{"octobre 2026", "", true},
		{"16 brumaire 2026", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLong(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLong(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLong(%q) error: %v", tt.in, err)
			continue
		}
		if ISO(got) != tt.want {
			t.Errorf("ParseLong(%q) = %s, want %s", tt.in, ISO(got), tt.want)
		}
	}
}

func TestParseLong_RoundTrip(t *testing.T) {
	d := time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC)
	got, err := ParseLong(Long(d))
	if err != nil || !got.Equal(d) {
		t.Errorf("round trip = %v, %v", got, err)
	}
}
