package service

import (
	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/entities"
	"github.com/alibiomar/meninx/internal/repository"
)

// AdminService backs the back-office: car, accessory and testimonial CRUD,
// reservation management, the client list and the analytics dashboard.
type AdminService struct {
	carRepo         *repository.CarRepository
	accessoryRepo   *repository.AccessoryRepository
	testimonialRepo *repository.TestimonialRepository
	reservationRepo *repository.ReservationRepository
	analyticsRepo   *repository.AnalyticsRepository
}

func NewAdminService(
	carRepo *repository.CarRepository,
	accessoryRepo *repository.AccessoryRepository,
	testimonialRepo *repository.TestimonialRepository,
	reservationRepo *repository.ReservationRepository,
	analyticsRepo *repository.AnalyticsRepository,
) *AdminService {
	return &AdminService{
		carRepo:         carRepo,
		accessoryRepo:   accessoryRepo,
		testimonialRepo: testimonialRepo,
		reservationRepo: reservationRepo,
		analyticsRepo:   analyticsRepo,
	}
}

// Cars

func (s *AdminService) CreateCar(c *db.Car) error { return s.carRepo.CreateCar(c) }
func (s *AdminService) UpdateCar(c *db.Car) error { return s.carRepo.UpdateCar(c) }
func (s *AdminService) DeleteCar(id int) error    { return s.carRepo.DeleteCar(id) }

// Accessories

func (s *AdminService) CreateAccessory(a *db.Accessory) error { return s.accessoryRepo.CreateAccessory(a) }
func (s *AdminService) UpdateAccessory(a *db.Accessory) error { return s.accessoryRepo.UpdateAccessory(a) }
func (s *AdminService) DeleteAccessory(id int) error          { return s.accessoryRepo.DeleteAccessory(id) }

// Testimonials

func (s *AdminService) CreateTestimonial(t *db.Testimonial) error {
	return s.testimonialRepo.CreateTestimonial(t)
}
func (s *AdminService) DeleteTestimonial(id int) error { return s.testimonialRepo.DeleteTestimonial(id) }

// Reservations

func (s *AdminService) ListReservations(status, date string, limit, offset int) (*entities.ReservationsList, error) {
	return s.reservationRepo.ListReservations(status, date, limit, offset)
}

func (s *AdminService) GetReservation(id int) (*db.Reservation, error) {
	return s.reservationRepo.GetReservationByID(id)
}

func (s *AdminService) UpdateReservation(res *db.Reservation) error {
	return s.reservationRepo.UpdateReservation(res)
}

func (s *AdminService) UpdateReservationStatus(id int, status string) error {
	return s.reservationRepo.UpdateStatus(id, status)
}

func (s *AdminService) UpdateReservationPaymentStatus(id int, paymentStatus string) error {
	return s.reservationRepo.UpdatePaymentStatus(id, paymentStatus)
}

func (s *AdminService) DeleteReservation(id int) error {
	return s.reservationRepo.DeleteReservation(id)
}

// Clients and analytics

func (s *AdminService) ListClients() ([]entities.ClientSummary, error) {
	return s.analyticsRepo.ListClients()
}

func (s *AdminService) Analytics() (*entities.AnalyticsResponse, error) {
	total, err := s.analyticsRepo.CountReservations()
	if err != nil {
		return nil, err
	}
	availableCars, err := s.carRepo.CountAvailableCars()
	if err != nil {
		return nil, err
	}
	revenue, err := s.analyticsRepo.TotalRevenue()
	if err != nil {
		return nil, err
	}
	monthly, err := s.analyticsRepo.MonthlyReservations()
	if err != nil {
		return nil, err
	}
	return &entities.AnalyticsResponse{
		TotalReservations: total,
		AvailableCars:     availableCars,
		TotalRevenue:      revenue,
		Monthly:           monthly,
	}, nil
}
