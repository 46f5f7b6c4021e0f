package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/alibiomar/meninx/internal/db"
)

type AccessoryRepository struct {
	DB *sql.DB
}

func NewAccessoryRepository(database *sql.DB) *AccessoryRepository {
	return &AccessoryRepository{DB: database}
}

const accessoryColumns = `id, name, price, COALESCE(description, ''), COALESCE(image_url, ''),
	discount, in_stock, COALESCE(category, ''), featured, created_at`

func scanAccessory(row interface{ Scan(...interface{}) error }, a *db.Accessory) error {
	return row.Scan(
		&a.ID, &a.Name, &a.Price, &a.Description, &a.ImageURL,
		&a.Discount, &a.InStock, &a.Category, &a.Featured, &a.CreatedAt,
	)
}

// ListAccessories returns a page of the storefront, newest first. A search
// query matches name or description; a category narrows the result.
func (r *AccessoryRepository) ListAccessories(search, category string, limit, offset int) ([]db.Accessory, error) {
	query := `SELECT ` + accessoryColumns + ` FROM accessories WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", idx, idx)
		args = append(args, "%"+search+"%")
		idx++
	}
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", idx)
		args = append(args, category)
		idx++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying accessories: %w", err)
	}
	defer rows.Close()

	var accessories []db.Accessory
	for rows.Next() {
		var a db.Accessory
		if err := scanAccessory(rows, &a); err != nil {
			return nil, fmt.Errorf("error scanning accessory: %w", err)
		}
		accessories = append(accessories, a)
	}
	return accessories, rows.Err()
}

func (r *AccessoryRepository) GetAccessory(id int) (*db.Accessory, error) {
	var a db.Accessory
	err := scanAccessory(r.DB.QueryRow(`SELECT `+accessoryColumns+` FROM accessories WHERE id = $1`, id), &a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("accessory %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying accessory: %w", err)
	}
	return &a, nil
}

func (r *AccessoryRepository) CreateAccessory(a *db.Accessory) error {
	query := `
		INSERT INTO accessories (name, price, description, image_url, discount, in_stock, category, featured)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, NULLIF($7, ''), $8)
		RETURNING id, created_at`
	return r.DB.QueryRow(query,
		a.Name, a.Price, a.Description, a.ImageURL, a.Discount, a.InStock, a.Category, a.Featured,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *AccessoryRepository) UpdateAccessory(a *db.Accessory) error {
	result, err := r.DB.Exec(`
		UPDATE accessories
		SET name = $1, price = $2, description = NULLIF($3, ''), image_url = NULLIF($4, ''),
			discount = $5, in_stock = $6, category = NULLIF($7, ''), featured = $8
		WHERE id = $9`,
		a.Name, a.Price, a.Description, a.ImageURL, a.Discount, a.InStock, a.Category, a.Featured, a.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating accessory %d: %w", a.ID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("accessory %d not found", a.ID)
	}
	return nil
}

func (r *AccessoryRepository) DeleteAccessory(id int) error {
	_, err := r.DB.Exec(`DELETE FROM accessories WHERE id = $1`, id)
	return err
}
