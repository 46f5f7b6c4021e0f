package entities

// MonthlyCount is one bar of the reservations-per-month chart.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type AnalyticsResponse struct {
	TotalReservations int            `json:"total_reservations"`
	AvailableCars     int            `json:"available_cars"`
	TotalRevenue      float64        `json:"total_revenue"`
	Monthly           []MonthlyCount `json:"monthly_reservations"`
}

// ClientSummary aggregates reservations per distinct customer email.
type ClientSummary struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	Reservations  int    `json:"reservations"`
}
