package services

import (
	"testing"
	"time"
)

func TestParseDateRangeDefaults(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	dr, err := ParseDateRange("", "", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dr.EndDate() != "2025-06-15" {
		t.Fatalf("end = %s, want 2025-06-15", dr.EndDate())
	}
	if dr.StartDate() != "2025-05-16" {
		t.Fatalf("start = %s, want 2025-05-16", dr.StartDate())
	}
}

func TestParseDateRangeExplicit(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	dr, err := ParseDateRange("2025-01-01", "2025-01-31", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dr.StartDate() != "2025-01-01" || dr.EndDate() != "2025-01-31" {
		t.Fatalf("range = %s..%s", dr.StartDate(), dr.EndDate())
	}
	// Inclusive end becomes a half-open bound one day later.
	if got := dr.EndExclusive().Format(time.DateOnly); got != "2025-02-01" {
		t.Fatalf("end exclusive = %s, want 2025-02-01", got)
	}
}

func TestParseDateRangeErrors(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := ParseDateRange("", "31-01-2025", now)
	if msg := fieldError(t, err, "end_date"); msg != "Invalid end_date format" {
		t.Fatalf("unexpected message: %q", msg)
	}

	_, err = ParseDateRange("2025/01/01", "", now)
	if msg := fieldError(t, err, "start_date"); msg != "Invalid start_date format" {
		t.Fatalf("unexpected message: %q", msg)
	}

	_, err = ParseDateRange("2025-02-01", "2025-01-01", now)
	if msg := fieldError(t, err, "start_date"); msg != "start_date cannot be after end_date" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestParseDateRangeSingleDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	dr, err := ParseDateRange("2025-03-10", "2025-03-10", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !dr.Start.Equal(dr.End) {
		t.Fatalf("single-day range not equal: %v vs %v", dr.Start, dr.End)
	}
}
