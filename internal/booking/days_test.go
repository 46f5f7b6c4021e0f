package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"single night counts both days", "2024-06-01", "2024-06-02", 2},
		{"weekend rental", "2024-06-01", "2024-06-03", 3},
		{"full week", "2024-06-01", "2024-06-08", 8},
		{"same day", "2024-06-01", "2024-06-01", 0},
		{"reversed range", "2024-06-03", "2024-06-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(date(tt.start), date(tt.end)))
		})
	}
}

func TestRentalDaysPartialDay(t *testing.T) {
	start := date("2024-06-01")
	end := date("2024-06-02").Add(6 * time.Hour)
	assert.Equal(t, 3, RentalDays(start, end), "a partial day rounds up before the inclusive day is added")
}

func TestTotalPrice(t *testing.T) {
	days := RentalDays(date("2024-06-01"), date("2024-06-03"))
	assert.Equal(t, 3, days)
	assert.Equal(t, 300.0, TotalPrice(days, 100.0))
	assert.Equal(t, 0.0, TotalPrice(0, 100.0))
}

func TestPeriodsOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		startA, endA, startB, endB     string
		want                           bool
	}{
		{"identical", "2024-06-01", "2024-06-03", "2024-06-01", "2024-06-03", true},
		{"contained", "2024-06-02", "2024-06-03", "2024-06-01", "2024-06-05", true},
		{"partial", "2024-06-01", "2024-06-03", "2024-06-02", "2024-06-05", true},
		{"touching end to start", "2024-06-01", "2024-06-03", "2024-06-03", "2024-06-05", true},
		{"touching start to end", "2024-06-05", "2024-06-07", "2024-06-01", "2024-06-05", true},
		{"disjoint before", "2024-06-01", "2024-06-02", "2024-06-03", "2024-06-05", false},
		{"disjoint after", "2024-06-06", "2024-06-08", "2024-06-03", "2024-06-05", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeriodsOverlap(date(tt.startA), date(tt.endA), date(tt.startB), date(tt.endB))
			assert.Equal(t, tt.want, got)
			// Overlap is symmetric.
			assert.Equal(t, tt.want, PeriodsOverlap(date(tt.startB), date(tt.endB), date(tt.startA), date(tt.endA)))
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	in := time.Date(2024, 6, 1, 15, 30, 45, 0, loc)
	got := DateOnly(in)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)
}
