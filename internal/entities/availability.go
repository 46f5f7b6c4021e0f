package entities

import (
	"time"

	"github.com/alibiomar/meninx/internal/db"
)

type AvailabilityRequest struct {
	CarID     int    `json:"car_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type AvailabilityResult struct {
	IsAvailable        bool             `json:"is_available"`
	RequestedStartDate time.Time        `json:"requested_start_date"`
	RequestedEndDate   time.Time        `json:"requested_end_date"`
	Conflicts          []db.Reservation `json:"conflicting_reservations,omitempty"`
}
