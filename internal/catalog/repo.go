package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, title, description, price, category, photo_file_id, image_url, is_active, created_at`

// List returns the active products matching the filter, newest first.
func (r *Repo) List(ctx context.Context, f Filter) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+`
	                              FROM products
	                              WHERE category=$1 AND is_active AND price BETWEEN $2 AND $3
	                              ORDER BY id DESC`,
		string(f.Category), f.MinPrice, f.MaxPrice)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Count mirrors List without pulling rows, for cheap cache revalidation.
func (r *Repo) Count(ctx context.Context, f Filter) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products
	                           WHERE category=$1 AND is_active AND price BETWEEN $2 AND $3`,
		string(f.Category), f.MinPrice, f.MaxPrice).Scan(&n)
	return n, err
}

func (r *Repo) Get(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.PhotoFileID, &p.ImageURL, &p.IsActive, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// All returns every product including inactive ones, for the back office.
func (r *Repo) All(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *Repo) Create(ctx context.Context, p *Product) error {
	return r.DB.QueryRow(ctx, `INSERT INTO products(title, description, price, category, photo_file_id, image_url, is_active)
	                           VALUES ($1,$2,$3,$4,$5,$6,$7)
	                           RETURNING id, created_at`,
		p.Title, p.Description, p.Price, string(p.Category), p.PhotoFileID, p.ImageURL, p.IsActive).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *Repo) Update(ctx context.Context, p *Product) error {
	tag, err := r.DB.Exec(ctx, `UPDATE products
	                            SET title=$2, description=$3, price=$4, category=$5, photo_file_id=$6, image_url=$7, is_active=$8
	                            WHERE id=$1`,
		p.ID, p.Title, p.Description, p.Price, string(p.Category), p.PhotoFileID, p.ImageURL, p.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive flips catalog visibility without touching the rest of the row.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.DB.Exec(ctx, `UPDATE products SET is_active=$2 WHERE id=$1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.PhotoFileID, &p.ImageURL, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
