package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/alibiomar/meninx/internal/entities"
	"github.com/alibiomar/meninx/internal/repository"
	"github.com/alibiomar/meninx/internal/service"
)

// UserHandler serves the public storefront: car listing, availability,
// direct reservation creation and lookup, accessories and testimonials.
type UserHandler struct {
	Service         *service.RentalService
	AccessoryRepo   *repository.AccessoryRepository
	TestimonialRepo *repository.TestimonialRepository
}

func NewUserHandler(svc *service.RentalService, accessories *repository.AccessoryRepository, testimonials *repository.TestimonialRepository) *UserHandler {
	return &UserHandler{Service: svc, AccessoryRepo: accessories, TestimonialRepo: testimonials}
}

func (h *UserHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entities.CarFilter{
		Transmission: q.Get("transmission"),
		Category:     q.Get("category"),
	}
	if v := q.Get("price_min"); v != "" {
		filter.PriceMin, _ = strconv.ParseFloat(v, 64)
	}
	if v := q.Get("price_max"); v != "" {
		filter.PriceMax, _ = strconv.ParseFloat(v, 64)
	}

	cars, err := h.Service.ListCars(filter)
	if err != nil {
		http.Error(w, "Failed to load available cars. Please try again.", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *UserHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	car, err := h.Service.GetCar(id)
	if err != nil {
		http.Error(w, "Car not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *UserHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	start, err := time.ParseInLocation(entities.DateLayout, req.StartDate, time.UTC)
	if err != nil {
		http.Error(w, "Invalid start date", http.StatusBadRequest)
		return
	}
	end, err := time.ParseInLocation(entities.DateLayout, req.EndDate, time.UTC)
	if err != nil {
		http.Error(w, "Invalid end date", http.StatusBadRequest)
		return
	}

	result, err := h.Service.CheckAvailability(req.CarID, start, end)
	if err != nil {
		http.Error(w, "Error checking availability", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *UserHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.CreateDirectReservation(req)
	if err != nil {
		writeError(w, err, "Failed to create the reservation. Please try again.")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *UserHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}
	res, err := h.Service.GetReservationByCode(code, email)
	if err != nil {
		http.Error(w, "Reservation not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *UserHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}
	if err := h.Service.CancelReservation(code, email); err != nil {
		writeError(w, err, "Failed to cancel the reservation. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation cancelled"})
}

func (h *UserHandler) ListAccessories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 12
	offset := 0
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		offset = v
	}

	accessories, err := h.AccessoryRepo.ListAccessories(q.Get("q"), q.Get("category"), limit, offset)
	if err != nil {
		http.Error(w, "Failed to fetch accessories", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, accessories)
}

func (h *UserHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.TestimonialRepo.ListTestimonials()
	if err != nil {
		http.Error(w, "Failed to fetch testimonials", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, testimonials)
}
