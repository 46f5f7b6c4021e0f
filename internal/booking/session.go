package booking

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/entities"
)

// Step identifies where a booking session is in the wizard.
type Step int

const (
	StepCustomerInfo Step = iota + 1
	StepSelectCar
	StepFinalize
	StepSubmitted
)

var (
	errSelectCar           = errors.New("Please select a car to continue")
	errUnavailable         = errors.New("This car is not available for the selected dates. Please choose different dates or another car.")
	errSubmitFailed        = errors.New("Failed to create the reservation. Please try again.")
	errAlreadySubmitted    = errors.New("This booking has already been submitted")
	msgAvailabilityFailure = "Failed to check car availability. Please try again."
)

// Session drives one user's booking from customer info to a persisted
// reservation. All state is scoped to the session; methods are safe for the
// handler goroutine plus the background availability check.
type Session struct {
	ID string

	store    Store
	notifier Notifier
	now      func() time.Time

	mu          sync.Mutex
	step        Step
	customer    entities.CustomerInfo
	selectedCar *db.Car
	period      entities.RentalPeriod
	summary     entities.RentalSummary
	lastError   string
	success     bool
	reservation *db.Reservation

	// availSeq tags each availability request so a slow query for a
	// superseded (car, dates) combination cannot overwrite newer state.
	availSeq uint64
	checking bool
}

// State is a point-in-time snapshot of a session, shaped for JSON.
type State struct {
	SessionID            string                 `json:"session_id"`
	Step                 Step                   `json:"step"`
	Customer             entities.CustomerInfo  `json:"customer"`
	SelectedCar          *db.Car                `json:"selected_car,omitempty"`
	StartDate            string                 `json:"start_date,omitempty"`
	EndDate              string                 `json:"end_date,omitempty"`
	Summary              entities.RentalSummary `json:"summary"`
	CheckingAvailability bool                   `json:"checking_availability"`
	Error                string                 `json:"error,omitempty"`
	Success              bool                   `json:"success"`
	ReservationID        int                    `json:"reservation_id,omitempty"`
	ReservationCode      string                 `json:"reservation_code,omitempty"`
}

func NewSession(id string, store Store, notifier Notifier) *Session {
	return &Session{
		ID:       id,
		store:    store,
		notifier: notifier,
		now:      time.Now,
		step:     StepCustomerInfo,
		summary:  entities.RentalSummary{IsAvailable: true},
	}
}

// SetCustomerInfo stores the step-1 form values. Validation happens on Next.
func (s *Session) SetCustomerInfo(info entities.CustomerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = info
}

// SelectCar records the chosen car and recomputes the rental summary.
func (s *Session) SelectCar(car db.Car) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := car
	s.selectedCar = &c
	s.recomputeLocked()
}

// SetPeriod records the rental dates and recomputes the rental summary.
func (s *Session) SetPeriod(start, end time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.period = entities.RentalPeriod{StartDate: DateOnly(start), EndDate: DateOnly(end)}
	s.recomputeLocked()
}

// Next advances the wizard one step. Forward transitions are gated: customer
// info must validate to leave step 1, a car must be selected to leave step 2.
// On failure the session stays put and the error is surfaced.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case StepCustomerInfo:
		if err := ValidateCustomerInfo(s.customer); err != nil {
			s.lastError = err.Error()
			return err
		}
		s.step = StepSelectCar
	case StepSelectCar:
		if s.selectedCar == nil {
			s.lastError = errSelectCar.Error()
			return errSelectCar
		}
		s.step = StepFinalize
	case StepFinalize:
		// Leaving step 3 goes through Submit.
		return nil
	case StepSubmitted:
		return errAlreadySubmitted
	}
	s.lastError = ""
	return nil
}

// Back returns to the previous step. Allowed from steps 2 and 3.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepSelectCar || s.step == StepFinalize {
		s.step--
		s.lastError = ""
	}
}

// Submit finalizes the booking: validates the period, requires the car to be
// available with at least one billable day, persists the reservation and
// fires the admin and customer notifications concurrently. Notification
// failures are logged and swallowed. If persistence fails the session stays
// in step 3 with a generic message.
func (s *Session) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == StepSubmitted {
		return errAlreadySubmitted
	}
	if s.step != StepFinalize || s.selectedCar == nil {
		err := errors.New("Booking is not ready to be submitted")
		s.lastError = err.Error()
		return err
	}
	if err := ValidateRentalPeriod(s.period, s.now()); err != nil {
		s.lastError = err.Error()
		return err
	}
	if !s.summary.IsAvailable {
		s.lastError = errUnavailable.Error()
		return errUnavailable
	}
	if s.summary.Days <= 0 {
		err := errors.New("Rental period must cover at least one day")
		s.lastError = err.Error()
		return err
	}

	res := &db.Reservation{
		CarID:         s.selectedCar.ID,
		CustomerName:  s.customer.Name,
		CustomerEmail: s.customer.Email,
		CustomerPhone: s.customer.Phone,
		StartDate:     s.period.StartDate,
		EndDate:       s.period.EndDate,
		TotalPrice:    s.summary.TotalPrice,
		Status:        db.StatusPending,
		PaymentStatus: db.PaymentPending,
		CarMake:       s.selectedCar.Make,
		CarModel:      s.selectedCar.Model,
		CarYear:       s.selectedCar.Year,
	}

	if err := s.store.CreateReservation(res); err != nil {
		log.Printf("booking: creating reservation for session %s: %v", s.ID, err)
		s.lastError = errSubmitFailed.Error()
		return errSubmitFailed
	}

	s.reservation = res
	s.step = StepSubmitted
	s.success = true
	s.lastError = ""
	s.notifyLocked(*res)
	return nil
}

// notifyLocked dispatches both notifications without waiting on either. Both
// are attempted even if one fails.
func (s *Session) notifyLocked(res db.Reservation) {
	go func() {
		if err := s.notifier.NotifyAdmin(res); err != nil {
			log.Printf("booking: admin notification for reservation %s failed: %v", res.Code, err)
		}
	}()
	go func() {
		if err := s.notifier.NotifyCustomer(res); err != nil {
			log.Printf("booking: customer notification for reservation %s failed: %v", res.Code, err)
		}
	}()
}

// Reset clears all transient state and returns the wizard to step 1.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepCustomerInfo
	s.customer = entities.CustomerInfo{}
	s.selectedCar = nil
	s.period = entities.RentalPeriod{}
	s.summary = entities.RentalSummary{IsAvailable: true}
	s.lastError = ""
	s.success = false
	s.reservation = nil
	s.availSeq++ // orphan any in-flight availability check
	s.checking = false
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		SessionID:            s.ID,
		Step:                 s.step,
		Customer:             s.customer,
		Summary:              s.summary,
		CheckingAvailability: s.checking,
		Error:                s.lastError,
		Success:              s.success,
	}
	if s.selectedCar != nil {
		c := *s.selectedCar
		st.SelectedCar = &c
	}
	if !s.period.StartDate.IsZero() {
		st.StartDate = s.period.StartDate.Format(entities.DateLayout)
	}
	if !s.period.EndDate.IsZero() {
		st.EndDate = s.period.EndDate.Format(entities.DateLayout)
	}
	if s.reservation != nil {
		st.ReservationID = s.reservation.ID
		st.ReservationCode = s.reservation.Code
	}
	return st
}

// recomputeLocked refreshes the rental summary. Day count and price are set
// immediately; the availability flag is resolved by a background query whose
// result is dropped if a newer recompute has been issued meanwhile.
func (s *Session) recomputeLocked() {
	if s.selectedCar == nil ||
		s.period.StartDate.IsZero() || s.period.EndDate.IsZero() ||
		!s.period.EndDate.After(s.period.StartDate) {
		s.summary = entities.RentalSummary{IsAvailable: true}
		s.availSeq++ // orphan any in-flight availability check
		s.checking = false
		return
	}

	days := RentalDays(s.period.StartDate, s.period.EndDate)
	s.summary = entities.RentalSummary{
		Days:        days,
		TotalPrice:  TotalPrice(days, s.selectedCar.PricePerDay),
		IsAvailable: true,
	}

	s.availSeq++
	seq := s.availSeq
	s.checking = true
	carID := s.selectedCar.ID
	start, end := s.period.StartDate, s.period.EndDate

	go func() {
		result, err := s.store.CheckAvailability(carID, start, end)

		s.mu.Lock()
		defer s.mu.Unlock()
		if seq != s.availSeq {
			// A newer (car, dates) combination superseded this check.
			return
		}
		s.checking = false
		if err != nil {
			log.Printf("booking: availability check for session %s: %v", s.ID, err)
			s.lastError = msgAvailabilityFailure
			return
		}
		s.summary.IsAvailable = result.IsAvailable
	}()
}
