package repository

import (
	"database/sql"
	"fmt"

	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/entities"
)

// AnalyticsRepository backs the admin dashboard numbers and the client list.
type AnalyticsRepository struct {
	DB *sql.DB
}

func NewAnalyticsRepository(database *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: database}
}

func (r *AnalyticsRepository) CountReservations() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM reservations`).Scan(&count)
	return count, err
}

// TotalRevenue sums total_price over paid reservations only.
func (r *AnalyticsRepository) TotalRevenue() (float64, error) {
	var revenue float64
	err := r.DB.QueryRow(
		`SELECT COALESCE(SUM(total_price), 0) FROM reservations WHERE payment_status = $1`,
		db.PaymentPaid,
	).Scan(&revenue)
	return revenue, err
}

// MonthlyReservations counts reservations per creation month, oldest first.
func (r *AnalyticsRepository) MonthlyReservations() ([]entities.MonthlyCount, error) {
	rows, err := r.DB.Query(`
		SELECT to_char(date_trunc('month', created_at), 'Mon YYYY') AS month, COUNT(*)
		FROM reservations
		GROUP BY date_trunc('month', created_at)
		ORDER BY date_trunc('month', created_at)`)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly reservations: %w", err)
	}
	defer rows.Close()

	var monthly []entities.MonthlyCount
	for rows.Next() {
		var mc entities.MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("error scanning monthly count: %w", err)
		}
		monthly = append(monthly, mc)
	}
	return monthly, rows.Err()
}

// ListClients aggregates reservations per distinct customer email, keeping
// the most recent name and phone on record.
func (r *AnalyticsRepository) ListClients() ([]entities.ClientSummary, error) {
	rows, err := r.DB.Query(`
		SELECT DISTINCT ON (customer_email)
			customer_name, customer_email, customer_phone,
			COUNT(*) OVER (PARTITION BY customer_email) AS reservations
		FROM reservations
		ORDER BY customer_email, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying clients: %w", err)
	}
	defer rows.Close()

	var clients []entities.ClientSummary
	for rows.Next() {
		var c entities.ClientSummary
		if err := rows.Scan(&c.CustomerName, &c.CustomerEmail, &c.CustomerPhone, &c.Reservations); err != nil {
			return nil, fmt.Errorf("error scanning client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
