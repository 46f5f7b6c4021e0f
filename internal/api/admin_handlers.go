package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// Cars

func (h *AdminHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var car db.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.CreateCar(&car); err != nil {
		http.Error(w, "Could not create car", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *AdminHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var car db.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	car.ID = id
	if err := h.Service.UpdateCar(&car); err != nil {
		http.Error(w, "Could not update car", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *AdminHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteCar(id); err != nil {
		http.Error(w, "Could not delete car", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Car deleted"})
}

// Accessories

func (h *AdminHandler) CreateAccessory(w http.ResponseWriter, r *http.Request) {
	var accessory db.Accessory
	if err := json.NewDecoder(r.Body).Decode(&accessory); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.CreateAccessory(&accessory); err != nil {
		http.Error(w, "Could not create accessory", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, accessory)
}

func (h *AdminHandler) UpdateAccessory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var accessory db.Accessory
	if err := json.NewDecoder(r.Body).Decode(&accessory); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	accessory.ID = id
	if err := h.Service.UpdateAccessory(&accessory); err != nil {
		http.Error(w, "Could not update accessory", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, accessory)
}

func (h *AdminHandler) DeleteAccessory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteAccessory(id); err != nil {
		http.Error(w, "Could not delete accessory", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Accessory deleted"})
}

// Testimonials

func (h *AdminHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var testimonial db.Testimonial
	if err := json.NewDecoder(r.Body).Decode(&testimonial); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.CreateTestimonial(&testimonial); err != nil {
		http.Error(w, "Could not create testimonial", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, testimonial)
}

func (h *AdminHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteTestimonial(id); err != nil {
		http.Error(w, "Could not delete testimonial", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Testimonial deleted"})
}

// Reservations

func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 50
	offset := 0
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		offset = v
	}

	list, err := h.Service.ListReservations(q.Get("status"), q.Get("date"), limit, offset)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	res, err := h.Service.GetReservation(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Reservation not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AdminHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var res db.Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	res.ID = id
	if err := h.Service.UpdateReservation(&res); err != nil {
		http.Error(w, "Could not update reservation", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation updated"})
}

func (h *AdminHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case db.StatusPending, db.StatusConfirmed, db.StatusCancelled, db.StatusCompleted:
	default:
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateReservationStatus(id, req.Status); err != nil {
		http.Error(w, "Could not update status", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

func (h *AdminHandler) UpdateReservationPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req PaymentStatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	switch req.PaymentStatus {
	case db.PaymentPending, db.PaymentPaid, db.PaymentFailed:
	default:
		http.Error(w, "Invalid payment status", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateReservationPaymentStatus(id, req.PaymentStatus); err != nil {
		http.Error(w, "Could not update payment status", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Payment status updated"})
}

func (h *AdminHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteReservation(id); err != nil {
		http.Error(w, "Could not delete reservation", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation deleted"})
}

// Clients and analytics

func (h *AdminHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.ListClients()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.Service.Analytics()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}
