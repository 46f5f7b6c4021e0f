package repository

import (
	"database/sql"
	"fmt"

	"github.com/alibiomar/meninx/internal/db"
)

type TestimonialRepository struct {
	DB *sql.DB
}

func NewTestimonialRepository(database *sql.DB) *TestimonialRepository {
	return &TestimonialRepository{DB: database}
}

func (r *TestimonialRepository) ListTestimonials() ([]db.Testimonial, error) {
	rows, err := r.DB.Query(`
		SELECT id, author, role, quote, rating, COALESCE(plan, ''), created_at
		FROM testimonials
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying testimonials: %w", err)
	}
	defer rows.Close()

	var testimonials []db.Testimonial
	for rows.Next() {
		var t db.Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Role, &t.Quote, &t.Rating, &t.Plan, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning testimonial: %w", err)
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

func (r *TestimonialRepository) CreateTestimonial(t *db.Testimonial) error {
	return r.DB.QueryRow(`
		INSERT INTO testimonials (author, role, quote, rating, plan)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at`,
		t.Author, t.Role, t.Quote, t.Rating, t.Plan,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TestimonialRepository) DeleteTestimonial(id int) error {
	_, err := r.DB.Exec(`DELETE FROM testimonials WHERE id = $1`, id)
	return err
}
