package entities

import "time"

// DateLayout is the wire format for rental dates.
const DateLayout = "2006-01-02"

// CustomerInfo is what the booking form collects in step 1. It is not
// persisted until a reservation is created.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RentalPeriod is the inclusive [start, end] range picked in step 3.
// Zero values mean "not entered yet".
type RentalPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// RentalSummary is derived from the selected car and period. Days and
// TotalPrice are set optimistically; IsAvailable is updated once the
// availability check resolves.
type RentalSummary struct {
	Days        int     `json:"days"`
	TotalPrice  float64 `json:"total_price"`
	IsAvailable bool    `json:"is_available"`
}
