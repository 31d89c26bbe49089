package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var (
	ErrNotFound = errors.New("order not found")
	// ErrNotCancelable: the order is gone, belongs to someone else or has
	// already been taken into work.
	ErrNotCancelable = errors.New("order cannot be canceled")
)

// Create persists a confirmed draft as one row. A failure leaves nothing
// behind, so the caller can keep the draft and let the user retry.
func (r *Repo) Create(ctx context.Context, o *Order) error {
	var addr *string
	if o.Address != "" {
		addr = &o.Address
	}
	return r.DB.QueryRow(ctx, `
		INSERT INTO orders(user_id, product_id, status, customer_name, phone, delivery_type, address, payment_type, comment, need_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at`,
		o.UserID, o.ProductID, string(o.Status), o.CustomerName, o.Phone,
		string(o.Delivery), addr, string(o.Payment), o.Comment, o.NeedDate).
		Scan(&o.ID, &o.CreatedAt)
}

const detailCols = `o.id, o.user_id, o.product_id, o.status, o.customer_name, o.phone,
	o.delivery_type, o.address, o.payment_type, o.comment, o.need_date, o.created_at,
	COALESCE(p.title, ''), COALESCE(p.price, 0), u.tg_id, u.username`

const detailJoin = `FROM orders o
	JOIN users u ON u.id = o.user_id
	LEFT JOIN products p ON p.id = o.product_id`

func (r *Repo) Detail(ctx context.Context, id int64) (*Detail, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+detailCols+` `+detailJoin+` WHERE o.id=$1`, id)
	d, err := scanDetail(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListByUser returns the customer's latest orders, newest first.
func (r *Repo) ListByUser(ctx context.Context, tgID int64, limit int) ([]Detail, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+detailCols+` `+detailJoin+`
		WHERE u.tg_id=$1 ORDER BY o.id DESC LIMIT $2`, tgID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows)
}

// ListByStatus backs the in-bot operator queue, newest first.
func (r *Repo) ListByStatus(ctx context.Context, st Status, limit int) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, product_id, status, customer_name, phone, delivery_type, address, payment_type, comment, need_date, created_at
		FROM orders WHERE status=$1 ORDER BY id DESC LIMIT $2`, string(st), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// ListRecent backs the back-office orders table.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]Detail, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+detailCols+` `+detailJoin+`
		ORDER BY o.id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows)
}

// UpdateStatus is the operator path: any status to any status.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, st Status) error {
	tag, err := r.DB.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, string(st))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelOwn cancels the customer's own order. The gate lives in the WHERE
// clause so a racing operator update loses nothing: once the order leaves
// "new" the statement matches zero rows.
func (r *Repo) CancelOwn(ctx context.Context, orderID, tgID int64) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE orders SET status=$3
		WHERE id=$1 AND status=$4
		  AND user_id = (SELECT id FROM users WHERE tg_id=$2)`,
		orderID, tgID, string(StatusCanceled), string(StatusNew))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotCancelable
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.DB.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[Status]int)
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[Status(s)] = n
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o        Order
		addr     *string
		needDate *time.Time
	)
	err := row.Scan(&o.ID, &o.UserID, &o.ProductID, &o.Status, &o.CustomerName, &o.Phone,
		&o.Delivery, &addr, &o.Payment, &o.Comment, &needDate, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if addr != nil {
		o.Address = *addr
	}
	if needDate != nil {
		o.NeedDate = *needDate
	}
	return &o, nil
}

func scanDetail(row pgx.Row) (*Detail, error) {
	var (
		d        Detail
		addr     *string
		needDate *time.Time
	)
	err := row.Scan(&d.ID, &d.UserID, &d.ProductID, &d.Status, &d.CustomerName, &d.Phone,
		&d.Delivery, &addr, &d.Payment, &d.Comment, &needDate, &d.CreatedAt,
		&d.ProductTitle, &d.ProductPrice, &d.UserTgID, &d.Username)
	if err != nil {
		return nil, err
	}
	if addr != nil {
		d.Address = *addr
	}
	if needDate != nil {
		d.NeedDate = *needDate
	}
	return &d, nil
}

func scanDetails(rows pgx.Rows) ([]Detail, error) {
	var out []Detail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}
