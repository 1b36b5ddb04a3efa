// Package frdate formats dates the way French readers expect them.
package frdate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var months = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Long formats t as "16 octobre 2026".
func Long(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// ISO formats t as "2026-10-16".
func ISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseLong parses a date written by Long. It accepts "1er" for the first
// day of the month.
func ParseLong(s string) (time.Time, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("frdate: malformed date %q", s)
	}
	day, err := strconv.Atoi(strings.TrimSuffix(fields[0], "er"))
	if err != nil {
		return time.Time{}, fmt.Errorf("frdate: bad day in %q: %w", s, err)
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("frdate: bad year in %q: %w", s, err)
	}
	for i, m := range months {
		if m == fields[1] {
			t := time.Date(year, time.Month(i+1), day, 0, 0, 0, 0, time.UTC)
			if t.Day() != day {
				return time.Time{}, fmt.Errorf("frdate: day out of range in %q", s)
			}
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("frdate: unknown month in %q", s)
}
