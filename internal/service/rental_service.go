package service

import (
	"fmt"
	"log"
	"time"

	"github.com/alibiomar/meninx/internal/booking"
	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/entities"
	apperrors "github.com/alibiomar/meninx/internal/errors"
	"github.com/alibiomar/meninx/internal/metrics"
	"github.com/alibiomar/meninx/internal/repository"
)

// RentalService is the data-access collaborator of the booking workflow. It
// satisfies booking.Store and also backs the direct reservation endpoints.
type RentalService struct {
	carRepo         *repository.CarRepository
	reservationRepo *repository.ReservationRepository
	notifier        booking.Notifier
	payments        *PaymentService
}

func NewRentalService(
	carRepo *repository.CarRepository,
	reservationRepo *repository.ReservationRepository,
	notifier booking.Notifier,
	payments *PaymentService,
) *RentalService {
	return &RentalService{
		carRepo:         carRepo,
		reservationRepo: reservationRepo,
		notifier:        notifier,
		payments:        payments,
	}
}

func (s *RentalService) ListCars(filter entities.CarFilter) ([]db.Car, error) {
	return s.carRepo.ListCars(filter)
}

func (s *RentalService) GetCar(id int) (*db.Car, error) {
	return s.carRepo.GetCar(id)
}

// CheckAvailability loads every non-cancelled reservation for the car and
// tests the requested [start, end] range against each with closed-interval
// overlap. Cancelled reservations never block a period.
func (s *RentalService) CheckAvailability(carID int, start, end time.Time) (*entities.AvailabilityResult, error) {
	existing, err := s.reservationRepo.GetActiveReservationsForCar(carID)
	if err != nil {
		metrics.AvailabilityChecks.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}

	result := &entities.AvailabilityResult{
		IsAvailable:        true,
		RequestedStartDate: start,
		RequestedEndDate:   end,
	}
	for _, res := range existing {
		if booking.PeriodsOverlap(start, end, res.StartDate, res.EndDate) {
			result.IsAvailable = false
			result.Conflicts = append(result.Conflicts, res)
		}
	}

	if result.IsAvailable {
		metrics.AvailabilityChecks.WithLabelValues("available").Inc()
	} else {
		metrics.AvailabilityChecks.WithLabelValues("unavailable").Inc()
	}
	return result, nil
}

// CreateReservation persists the record and fills the assigned identity and
// code. Part of the booking.Store contract.
func (s *RentalService) CreateReservation(res *db.Reservation) error {
	if res.Code == "" {
		res.Code = fmt.Sprintf("%08X", time.Now().UnixNano()%100000000)
	}
	if err := s.reservationRepo.CreateReservation(res); err != nil {
		return err
	}
	metrics.ReservationsCreated.Inc()
	return nil
}

// CreateDirectReservation serves the plain POST /api/reservations path: it
// runs the same validation, pricing and availability rules as the wizard,
// persists the record and fires both notifications without waiting on them.
func (s *RentalService) CreateDirectReservation(req entities.ReservationRequest) (*entities.ReservationCreatedResponse, error) {
	info := entities.CustomerInfo{Name: req.CustomerName, Email: req.CustomerEmail, Phone: req.CustomerPhone}
	if err := booking.ValidateCustomerInfo(info); err != nil {
		return nil, apperrors.ErrBadRequest(err.Error())
	}

	start, err := time.ParseInLocation(entities.DateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, apperrors.ErrBadRequest("Invalid start date")
	}
	end, err := time.ParseInLocation(entities.DateLayout, req.EndDate, time.UTC)
	if err != nil {
		return nil, apperrors.ErrBadRequest("Invalid end date")
	}
	period := entities.RentalPeriod{StartDate: start, EndDate: end}
	if err := booking.ValidateRentalPeriod(period, time.Now()); err != nil {
		return nil, apperrors.ErrBadRequest(err.Error())
	}

	car, err := s.carRepo.GetCar(req.CarID)
	if err != nil {
		return nil, apperrors.ErrNotFound("Car not found")
	}

	availability, err := s.CheckAvailability(car.ID, start, end)
	if err != nil {
		return nil, err
	}
	if !availability.IsAvailable {
		return nil, apperrors.NewHTTPError(409, "This car is not available for the selected dates. Please choose different dates or another car.")
	}

	days := booking.RentalDays(start, end)
	res := &db.Reservation{
		CarID:         car.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		StartDate:     start,
		EndDate:       end,
		TotalPrice:    booking.TotalPrice(days, car.PricePerDay),
		Status:        db.StatusPending,
		PaymentStatus: db.PaymentPending,
		CarMake:       car.Make,
		CarModel:      car.Model,
		CarYear:       car.Year,
	}
	if err := s.CreateReservation(res); err != nil {
		log.Printf("Error creating reservation in repository: %v", err)
		return nil, err
	}

	resp := &entities.ReservationCreatedResponse{
		ID:         res.ID,
		Code:       res.Code,
		Days:       days,
		TotalPrice: res.TotalPrice,
		Message:    "Reservation created.",
	}

	if req.PayOnline && s.payments.Enabled() {
		checkoutURL, sessionID, err := s.payments.CreateDepositCheckout(res)
		if err != nil {
			// The reservation stands; payment can be retried or settled on site.
			log.Printf("Error creating checkout session for reservation %s: %v", res.Code, err)
		} else if err := s.reservationRepo.SetStripeSessionID(res.ID, sessionID); err != nil {
			log.Printf("Error attaching stripe session to reservation %s: %v", res.Code, err)
		} else {
			resp.CheckoutURL = checkoutURL
		}
	}

	s.notify(*res)
	return resp, nil
}

// notify dispatches admin and customer notifications concurrently;
// failures are logged and never surface to the caller.
func (s *RentalService) notify(res db.Reservation) {
	go func() {
		if err := s.notifier.NotifyAdmin(res); err != nil {
			log.Printf("Admin notification for reservation %s failed: %v", res.Code, err)
		}
	}()
	go func() {
		if err := s.notifier.NotifyCustomer(res); err != nil {
			log.Printf("Customer notification for reservation %s failed: %v", res.Code, err)
		}
	}()
}

func (s *RentalService) GetReservationByCode(code, email string) (*db.Reservation, error) {
	return s.reservationRepo.GetReservationByCode(code, email)
}

// CancelReservation cancels the customer's own reservation, looked up by
// code and email. Completed rentals cannot be cancelled.
func (s *RentalService) CancelReservation(code, email string) error {
	res, err := s.reservationRepo.GetReservationByCode(code, email)
	if err != nil {
		return apperrors.ErrNotFound("Reservation not found")
	}
	if res.Status == db.StatusCompleted {
		return apperrors.ErrBadRequest("A completed reservation cannot be cancelled")
	}
	if res.Status == db.StatusCancelled {
		return nil
	}
	return s.reservationRepo.CancelReservation(res.ID)
}
