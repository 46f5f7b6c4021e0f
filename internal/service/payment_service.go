package service

import (
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"

	"github.com/alibiomar/meninx/internal/db"
)

// depositRate is the share of the rental price collected up front when the
// customer chooses to pay online.
const depositRate = 0.3

// PaymentService wraps Stripe Checkout for the optional online deposit. A
// nil service means payments are disabled and reservations settle on site.
type PaymentService struct {
	currency   string
	successURL string
	cancelURL  string
}

func NewPaymentService(secretKey string) *PaymentService {
	if secretKey == "" {
		return nil
	}
	stripe.Key = secretKey

	currency := os.Getenv("STRIPE_CURRENCY")
	if currency == "" {
		currency = "eur"
	}
	baseURL := os.Getenv("FRONTEND_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return &PaymentService{
		currency:   currency,
		successURL: baseURL + "/reservation/confirmation?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  baseURL + "/reservation/failed?session_id={CHECKOUT_SESSION_ID}",
	}
}

func (s *PaymentService) Enabled() bool {
	return s != nil
}

// CreateDepositCheckout opens a checkout session for the deposit on a
// reservation and returns the hosted payment URL and session id.
func (s *PaymentService) CreateDepositCheckout(res *db.Reservation) (string, string, error) {
	amount := int64(res.TotalPrice * depositRate * 100)
	if amount <= 0 {
		return "", "", fmt.Errorf("deposit amount must be positive, got %d", amount)
	}

	description := fmt.Sprintf("Acompte location %d %s %s - réservation %s",
		res.CarYear, res.CarMake, res.CarModel, res.Code)

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(s.successURL),
		CancelURL:     stripe.String(s.cancelURL),
		CustomerEmail: stripe.String(res.CustomerEmail),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", "", fmt.Errorf("creating checkout session: %w", err)
	}
	return sess.URL, sess.ID, nil
}
