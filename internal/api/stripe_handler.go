package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/alibiomar/meninx/internal/booking"
	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/repository"
)

// StripeWebhookHandler reconciles checkout outcomes with reservation rows.
// A completed deposit checkout confirms the reservation; an expired or
// failed one marks the payment failed but keeps the reservation pending
// so staff can follow up.
type StripeWebhookHandler struct {
	StripeSecret string
	Reservations *repository.ReservationRepository
	Notifier     booking.Notifier
}

func NewStripeWebhookHandler(stripeSecret string, reservations *repository.ReservationRepository, notifier booking.Notifier) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		StripeSecret: stripeSecret,
		Reservations: reservations,
		Notifier:     notifier,
	}
}

func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading webhook body: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, h.StripeSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("Error parsing checkout.session: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if sess.ID == "" {
			log.Printf("No session ID in checkout.session.completed")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := h.Reservations.UpdateStatusesBySessionID(sess.ID, db.StatusConfirmed, db.PaymentPaid); err != nil {
			log.Printf("DB error updating reservation for session %s: %v", sess.ID, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		reservation, err := h.Reservations.GetReservationByStripeSessionID(sess.ID)
		if err != nil {
			log.Printf("DB error loading reservation for session %s: %v", sess.ID, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		go func(res db.Reservation) {
			if err := h.Notifier.NotifyCustomer(res); err != nil {
				log.Printf("Error sending payment confirmation for reservation %s: %v", res.Code, err)
			}
		}(*reservation)

	case "checkout.session.expired", "checkout.session.async_payment_failed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("Error parsing checkout.session: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if sess.ID == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := h.Reservations.UpdateStatusesBySessionID(sess.ID, db.StatusPending, db.PaymentFailed); err != nil {
			log.Printf("DB error marking payment failed for session %s: %v", sess.ID, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

	default:
		log.Printf("Unhandled event type: %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}
