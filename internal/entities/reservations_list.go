package entities

import "github.com/alibiomar/meninx/internal/db"

type ReservationsList struct {
	Total        int64            `json:"total"`
	Limit        int              `json:"limit"`
	Offset       int              `json:"offset"`
	Reservations []db.Reservation `json:"reservations"`
}
