package booking

import "time"

const day = 24 * time.Hour

// RentalDays returns the number of billable days for the inclusive
// [start, end] range: the ceiling of the elapsed time in days, plus one.
// A one-day gap (2024-06-01 to 2024-06-02) is billed as 2 days.
// Returns 0 when the range is not ordered.
func RentalDays(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	d := end.Sub(start)
	days := int(d / day)
	if d%day != 0 {
		days++
	}
	return days + 1
}

// TotalPrice is days x the car's daily rate, exactly.
func TotalPrice(days int, pricePerDay float64) float64 {
	return float64(days) * pricePerDay
}

// PeriodsOverlap reports whether the closed intervals [startA, endA] and
// [startB, endB] share at least one day. A period ending exactly on another's
// start date counts as an overlap.
func PeriodsOverlap(startA, endA, startB, endB time.Time) bool {
	return !startA.After(endB) && !endA.Before(startB)
}

// DateOnly truncates t to midnight UTC, the precision rental dates use.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
