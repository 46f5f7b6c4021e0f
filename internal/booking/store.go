package booking

import (
	"time"

	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/entities"
)

// Store is the data-access collaborator behind the booking workflow. The
// Postgres-backed service implements it in production; tests use in-memory
// fakes.
type Store interface {
	ListCars(filter entities.CarFilter) ([]db.Car, error)
	// CheckAvailability computes closed-interval overlap of [start, end]
	// against all non-cancelled reservations for the car.
	CheckAvailability(carID int, start, end time.Time) (*entities.AvailabilityResult, error)
	// CreateReservation persists the record and fills in the assigned
	// identity, code and timestamps.
	CreateReservation(res *db.Reservation) error
}

// Notifier dispatches the post-submission messages. Sends are best-effort:
// failures are logged by the caller and never affect the reservation.
type Notifier interface {
	NotifyAdmin(res db.Reservation) error
	NotifyCustomer(res db.Reservation) error
}
