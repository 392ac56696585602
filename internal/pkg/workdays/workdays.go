// Package workdays counts Monday-to-Friday days, the unit used for leave duration.
package workdays

import (
	"time"

	"github.com/teambition/rrule-go"
)

var weekdays = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}

// Count returns the number of weekdays between start and end, both inclusive.
// Only the calendar date of each bound is considered.
func Count(start, end time.Time) int {
	return len(Dates(start, end))
}

// Dates lists the weekdays between start and end, both inclusive, at midnight UTC.
func Dates(start, end time.Time) []time.Time {
	from := truncate(start)
	until := truncate(end)
	if from.After(until) {
		return nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   from,
		Until:     until,
		Byweekday: weekdays,
	})
	if err != nil {
		return fallbackDates(from, until)
	}
	return rule.All()
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// fallbackDates walks the range day by day; used only if the rule cannot be built.
func fallbackDates(from, until time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(until); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			dates = append(dates, d)
		}
	}
	return dates
}
