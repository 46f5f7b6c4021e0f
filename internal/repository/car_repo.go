package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/entities"
)

type CarRepository struct {
	DB *sql.DB
}

func NewCarRepository(database *sql.DB) *CarRepository {
	return &CarRepository{DB: database}
}

const carColumns = `id, make, model, year, price_per_day, transmission, fuel_type, seats, color,
	COALESCE(category, ''), COALESCE(image_url, ''), COALESCE(description, ''), available, created_at`

func scanCar(row interface{ Scan(...interface{}) error }, c *db.Car) error {
	return row.Scan(
		&c.ID, &c.Make, &c.Model, &c.Year, &c.PricePerDay, &c.Transmission, &c.FuelType,
		&c.Seats, &c.Color, &c.Category, &c.ImageURL, &c.Description, &c.Available, &c.CreatedAt,
	)
}

// ListCars returns cars matching the typed filter set, newest first.
func (r *CarRepository) ListCars(filter entities.CarFilter) ([]db.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.PriceMin > 0 {
		query += " AND price_per_day >= $" + strconv.Itoa(idx)
		args = append(args, filter.PriceMin)
		idx++
	}
	if filter.PriceMax > 0 {
		query += " AND price_per_day <= $" + strconv.Itoa(idx)
		args = append(args, filter.PriceMax)
		idx++
	}
	if !filter.MatchesAll(filter.Transmission) {
		query += " AND transmission = $" + strconv.Itoa(idx)
		args = append(args, filter.Transmission)
		idx++
	}
	if !filter.MatchesAll(filter.Category) {
		query += " AND category = $" + strconv.Itoa(idx)
		args = append(args, filter.Category)
		idx++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying cars: %w", err)
	}
	defer rows.Close()

	var cars []db.Car
	for rows.Next() {
		var c db.Car
		if err := scanCar(rows, &c); err != nil {
			return nil, fmt.Errorf("error scanning car: %w", err)
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *CarRepository) GetCar(id int) (*db.Car, error) {
	var c db.Car
	err := scanCar(r.DB.QueryRow(`SELECT `+carColumns+` FROM cars WHERE id = $1`, id), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("car %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying car: %w", err)
	}
	return &c, nil
}

func (r *CarRepository) CreateCar(c *db.Car) error {
	query := `
		INSERT INTO cars (make, model, year, price_per_day, transmission, fuel_type, seats, color, category, image_url, description, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), $12)
		RETURNING id, created_at`
	return r.DB.QueryRow(query,
		c.Make, c.Model, c.Year, c.PricePerDay, c.Transmission, c.FuelType,
		c.Seats, c.Color, c.Category, c.ImageURL, c.Description, c.Available,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *CarRepository) UpdateCar(c *db.Car) error {
	result, err := r.DB.Exec(`
		UPDATE cars
		SET make = $1, model = $2, year = $3, price_per_day = $4, transmission = $5,
			fuel_type = $6, seats = $7, color = $8, category = NULLIF($9, ''),
			image_url = NULLIF($10, ''), description = NULLIF($11, ''), available = $12
		WHERE id = $13`,
		c.Make, c.Model, c.Year, c.PricePerDay, c.Transmission, c.FuelType,
		c.Seats, c.Color, c.Category, c.ImageURL, c.Description, c.Available, c.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating car %d: %w", c.ID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("car %d not found", c.ID)
	}
	return nil
}

func (r *CarRepository) DeleteCar(id int) error {
	_, err := r.DB.Exec(`DELETE FROM cars WHERE id = $1`, id)
	return err
}

// CountAvailableCars feeds the analytics dashboard.
func (r *CarRepository) CountAvailableCars() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM cars WHERE available = true`).Scan(&count)
	return count, err
}
