package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartOfDayHour is the nominal start of the working day (09:00).
const StartOfDayHour = 9

const (
	DefaultLateThresholdMinutes = 15
	DefaultHalfDayHours         = 4.0
)

// Policy holds the attendance business rules. Location is the single time
// zone used both for the calendar-day key and for the late rule.
type Policy struct {
	LateThresholdMinutes int
	HalfDayHours         float64
	Location             *time.Location
}

// DefaultPolicy returns the default thresholds evaluated in UTC.
func DefaultPolicy() Policy {
	return Policy{
		LateThresholdMinutes: DefaultLateThresholdMinutes,
		HalfDayHours:         DefaultHalfDayHours,
		Location:             time.UTC,
	}
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// Today returns the calendar day containing t, as 00:00 UTC of that day.
func (p Policy) Today(t time.Time) time.Time {
	local := t.In(p.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckInStatus is LATE when the wall-clock time is after 09:<threshold>.
func (p Policy) CheckInStatus(t time.Time) Status {
	local := t.In(p.location())
	h, m := local.Hour(), local.Minute()
	if h > StartOfDayHour || (h == StartOfDayHour && m > p.LateThresholdMinutes) {
		return StatusLate
	}
	return StatusPresent
}

// CheckOutStatus overrides current with HALF_DAY when fewer than HalfDayHours
// were worked, and keeps current otherwise.
func (p Policy) CheckOutStatus(checkIn, checkOut time.Time, current Status) Status {
	if HoursBetween(checkIn, checkOut) < p.HalfDayHours {
		return StatusHalfDay
	}
	return current
}

// HoursBetween returns (to - from) in hours.
func HoursBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours()
}

// FormatHours renders hours with two decimals, e.g. "2.00".
func FormatHours(hours float64) string {
	return decimal.NewFromFloat(hours).StringFixed(2)
}
