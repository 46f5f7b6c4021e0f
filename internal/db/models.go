package db

import "time"

// Reservation statuses as stored in Postgres.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

type Car struct {
	ID           int       `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	PricePerDay  float64   `json:"price_per_day"`
	Transmission string    `json:"transmission"`
	FuelType     string    `json:"fuel_type"`
	Seats        int       `json:"seats"`
	Color        string    `json:"color"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url,omitempty"`
	Description  string    `json:"description,omitempty"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
}

// Reservation carries a denormalized snapshot of the car's make/model/year so
// historical rows stay meaningful if the car is later edited or deleted.
type Reservation struct {
	ID              int       `json:"id"`
	Code            string    `json:"code"`
	CarID           int       `json:"car_id"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalPrice      float64   `json:"total_price"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	CarMake         string    `json:"car_make"`
	CarModel        string    `json:"car_model"`
	CarYear         int       `json:"car_year"`
	StripeSessionID string    `json:"stripe_session_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Accessory struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Discount    int       `json:"discount"`
	InStock     bool      `json:"in_stock"`
	Category    string    `json:"category,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

type Testimonial struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	Plan      string    `json:"plan,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
