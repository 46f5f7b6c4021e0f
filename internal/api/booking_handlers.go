package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alibiomar/meninx/internal/booking"
	"github.com/alibiomar/meninx/internal/entities"
	"github.com/alibiomar/meninx/internal/service"
)

// BookingHandler exposes the 3-step booking wizard over HTTP. Every endpoint
// answers with the session snapshot so the client can render the current
// step, summary and error in one round trip.
type BookingHandler struct {
	Sessions *booking.Manager
	Service  *service.RentalService
}

func NewBookingHandler(sessions *booking.Manager, svc *service.RentalService) *BookingHandler {
	return &BookingHandler{Sessions: sessions, Service: svc}
}

func (h *BookingHandler) session(w http.ResponseWriter, r *http.Request) *booking.Session {
	sess, ok := h.Sessions.Get(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Booking session not found", http.StatusNotFound)
		return nil
	}
	return sess
}

func (h *BookingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Create()
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *BookingHandler) SetCustomerInfo(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if sess == nil {
		return
	}
	var info entities.CustomerInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	sess.SetCustomerInfo(info)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *BookingHandler) SelectCar(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if sess == nil {
		return
	}
	var req SelectCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	car, err := h.Service.GetCar(req.CarID)
	if err != nil {
		http.Error(w, "Car not found", http.StatusNotFound)
		return
	}
	sess.SelectCar(*car)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *BookingHandler) SetPeriod(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if sess == nil {
		return
	}
	var req PeriodRequest
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
	sess.SetPeriod(start, end)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *BookingHandler) Next(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if sess == nil {
		return
	}
	if err := sess.Next(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, sess.Snapshot())
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *BookingHandler) Back(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if sess == nil {
		return
	}
	sess.Back()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if sess == nil {
		return
	}
	if err := sess.Submit(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, sess.Snapshot())
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *BookingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if sess == nil {
		return
	}
	sess.Reset()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}
