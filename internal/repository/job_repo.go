package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"github.com/alibiomar/meninx/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetConfirmedReservationIDsPastEndDate finds confirmed reservations whose
// rental period is over.
func (r *JobRepository) GetConfirmedReservationIDsPastEndDate() ([]int, error) {
	rows, err := r.DB.Query(
		`SELECT id FROM reservations WHERE status = $1 AND end_date < CURRENT_DATE`,
		db.StatusConfirmed,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying ended reservations: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *JobRepository) UpdateReservationStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.DB.Exec(
		`UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		newStatus, pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("error updating reservation statuses: %w", err)
	}
	if rowsAffected, err := result.RowsAffected(); err == nil {
		log.Printf("Updated status for %d reservations to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// DeletePendingReservationsOlderThan drops stale pending reservations that
// were never confirmed or paid.
func (r *JobRepository) DeletePendingReservationsOlderThan(before time.Time) (int64, error) {
	result, err := r.DB.Exec(
		`DELETE FROM reservations WHERE status = $1 AND payment_status = $2 AND created_at < $3`,
		db.StatusPending, db.PaymentPending, before,
	)
	if err != nil {
		return 0, fmt.Errorf("error deleting old pending reservations: %w", err)
	}
	return result.RowsAffected()
}
