package shift

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

// ParseClock converts "HH:MM" into minutes after midnight.
func ParseClock(clock string) (int, error) {
	if !validator.IsValidClock(clock) {
		return 0, shift.ErrInvalidClockTime
	}
	hh, mm, _ := strings.Cut(clock, ":")
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, shift.ErrInvalidClockTime
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, shift.ErrInvalidClockTime
	}
	return h*60 + m, nil
}

// Detect returns the first shift whose window contains the wall clock of
// clock, in clock's own location. Overnight shifts wrap past midnight.
// Shifts are matched in the order given, so overlapping windows resolve to
// whichever comes first.
func Detect(shifts []shift.Shift, clock time.Time) (shift.Shift, error) {
	t := clock.Hour()*60 + clock.Minute()

	for _, s := range shifts {
		start, err := ParseClock(s.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(s.EndTime)
		if err != nil {
			continue
		}

		if s.IsOvernight {
			if t >= start || t <= end {
				return s, nil
			}
			continue
		}
		if t >= start && t <= end {
			return s, nil
		}
	}

	return shift.Shift{}, shift.ErrNoShiftMatched
}

// StartOn anchors the shift's start time to the calendar day of day.
func StartOn(s shift.Shift, day time.Time) (time.Time, error) {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, start/60, start%60, 0, 0, day.Location()), nil
}
