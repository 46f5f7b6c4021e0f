package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/entities"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

const reservationColumns = `id, code, car_id, customer_name, customer_email, customer_phone,
	start_date, end_date, total_price, status, payment_status,
	car_make, car_model, car_year, COALESCE(stripe_session_id, ''), created_at, updated_at`

func scanReservation(row interface{ Scan(...interface{}) error }, res *db.Reservation) error {
	return row.Scan(
		&res.ID, &res.Code, &res.CarID, &res.CustomerName, &res.CustomerEmail, &res.CustomerPhone,
		&res.StartDate, &res.EndDate, &res.TotalPrice, &res.Status, &res.PaymentStatus,
		&res.CarMake, &res.CarModel, &res.CarYear, &res.StripeSessionID, &res.CreatedAt, &res.UpdatedAt,
	)
}

func (r *ReservationRepository) CreateReservation(res *db.Reservation) error {
	query := `
		INSERT INTO reservations
		(code, car_id, customer_name, customer_email, customer_phone, start_date, end_date,
		 total_price, status, payment_status, car_make, car_model, car_year, stripe_session_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''))
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		res.Code, res.CarID, res.CustomerName, res.CustomerEmail, res.CustomerPhone,
		res.StartDate, res.EndDate, res.TotalPrice, res.Status, res.PaymentStatus,
		res.CarMake, res.CarModel, res.CarYear, res.StripeSessionID,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

// GetActiveReservationsForCar returns every non-cancelled reservation for the
// car; the service layer computes interval overlap against them.
func (r *ReservationRepository) GetActiveReservationsForCar(carID int) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE car_id = $1 AND status <> $2
		ORDER BY start_date`
	rows, err := r.DB.Query(query, carID, db.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations for car %d: %w", carID, err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *ReservationRepository) GetReservationByCode(code, email string) (*db.Reservation, error) {
	var res db.Reservation
	err := scanReservation(r.DB.QueryRow(
		`SELECT `+reservationColumns+` FROM reservations WHERE code = $1 AND customer_email = $2`,
		code, email,
	), &res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) GetReservationByID(id int) (*db.Reservation, error) {
	var res db.Reservation
	err := scanReservation(r.DB.QueryRow(
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id,
	), &res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) GetReservationByStripeSessionID(sessionID string) (*db.Reservation, error) {
	var res db.Reservation
	err := scanReservation(r.DB.QueryRow(
		`SELECT `+reservationColumns+` FROM reservations WHERE stripe_session_id = $1`, sessionID,
	), &res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no reservation for stripe session '%s': %w", sessionID, err)
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return &res, nil
}

// ListReservations returns a page of reservations with the matching total,
// optionally filtered by status and by start date (YYYY-MM-DD).
func (r *ReservationRepository) ListReservations(status, date string, limit, offset int) (*entities.ReservationsList, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if status != "" {
		where += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	if date != "" {
		where += " AND start_date = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM reservations`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("error counting reservations: %w", err)
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(idx) + ` OFFSET $` + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	list := &entities.ReservationsList{Total: total, Limit: limit, Offset: offset}
	for rows.Next() {
		var res db.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		list.Reservations = append(list.Reservations, res)
	}
	return list, rows.Err()
}

func (r *ReservationRepository) UpdateReservation(res *db.Reservation) error {
	result, err := r.DB.Exec(`
		UPDATE reservations
		SET car_id = $1, customer_name = $2, customer_email = $3, customer_phone = $4,
			start_date = $5, end_date = $6, total_price = $7, status = $8, payment_status = $9,
			updated_at = NOW()
		WHERE id = $10`,
		res.CarID, res.CustomerName, res.CustomerEmail, res.CustomerPhone,
		res.StartDate, res.EndDate, res.TotalPrice, res.Status, res.PaymentStatus, res.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating reservation %d: %w", res.ID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("reservation %d not found", res.ID)
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(id int, status string) error {
	_, err := r.DB.Exec(
		`UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	return err
}

func (r *ReservationRepository) UpdatePaymentStatus(id int, paymentStatus string) error {
	_, err := r.DB.Exec(
		`UPDATE reservations SET payment_status = $1, updated_at = NOW() WHERE id = $2`,
		paymentStatus, id,
	)
	return err
}

// UpdateStatusesBySessionID maps a Stripe checkout outcome onto the
// reservation that owns the session.
func (r *ReservationRepository) UpdateStatusesBySessionID(sessionID, status, paymentStatus string) error {
	result, err := r.DB.Exec(
		`UPDATE reservations SET status = $1, payment_status = $2, updated_at = NOW() WHERE stripe_session_id = $3`,
		status, paymentStatus, sessionID,
	)
	if err != nil {
		return fmt.Errorf("error updating reservation for stripe session '%s': %w", sessionID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no reservation for stripe session '%s'", sessionID)
	}
	return nil
}

func (r *ReservationRepository) SetStripeSessionID(id int, sessionID string) error {
	_, err := r.DB.Exec(
		`UPDATE reservations SET stripe_session_id = $1, updated_at = NOW() WHERE id = $2`,
		sessionID, id,
	)
	return err
}

func (r *ReservationRepository) DeleteReservation(id int) error {
	_, err := r.DB.Exec(`DELETE FROM reservations WHERE id = $1`, id)
	return err
}

// CancelReservation marks a reservation cancelled; cancelled rows stop
// blocking availability for their period.
func (r *ReservationRepository) CancelReservation(id int) error {
	return r.UpdateStatus(id, db.StatusCancelled)
}
