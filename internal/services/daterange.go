package services

import (
	"time"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
)

// DateRange is the shared report window: calendar dates, both ends
// inclusive. End defaults to today, start to thirty days before end.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (dr DateRange) StartDate() string { return dr.Start.Format(time.DateOnly) }
func (dr DateRange) EndDate() string   { return dr.End.Format(time.DateOnly) }

// EndExclusive converts the inclusive end date into the half-open upper
// bound the SQL filters use.
func (dr DateRange) EndExclusive() time.Time { return dr.End.AddDate(0, 0, 1) }

func ParseDateRange(startStr, endStr string, now time.Time) (DateRange, error) {
	end := truncateToDate(now)
	if endStr != "" {
		parsed, err := time.Parse(time.DateOnly, endStr)
		if err != nil {
			return DateRange{}, apierr.ValidationField("end_date", "Invalid end_date format")
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -30)
	if startStr != "" {
		parsed, err := time.Parse(time.DateOnly, startStr)
		if err != nil {
			return DateRange{}, apierr.ValidationField("start_date", "Invalid start_date format")
		}
		start = parsed
	}

	if start.After(end) {
		return DateRange{}, apierr.ValidationField("start_date", "start_date cannot be after end_date")
	}
	return DateRange{Start: start, End: end}, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
