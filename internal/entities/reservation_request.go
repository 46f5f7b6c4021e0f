package entities

// ReservationRequest is the direct-creation payload. The booking wizard
// builds the same record internally from its session state.
type ReservationRequest struct {
	CarID         int    `json:"car_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	PayOnline     bool   `json:"pay_online"`
}

type ReservationCreatedResponse struct {
	ID          int     `json:"id"`
	Code        string  `json:"code"`
	Days        int     `json:"days"`
	TotalPrice  float64 `json:"total_price"`
	CheckoutURL string  `json:"checkout_url,omitempty"`
	Message     string  `json:"message"`
}
