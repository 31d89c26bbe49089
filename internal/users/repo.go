package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const userCols = `id, tg_id, username, first_name, role, created_at`

// Upsert registers the Telegram account on first contact and refreshes the
// profile fields afterwards. The role is seeded once: ids listed in the
// bootstrap set start as admin, everyone else as user, and later edits from
// the back office are never overwritten here.
func (r *Repo) Upsert(ctx context.Context, tgID int64, username, firstName string, bootstrapAdmins []int64) (*User, error) {
	role := RoleUser
	for _, id := range bootstrapAdmins {
		if id == tgID {
			role = RoleAdmin
			break
		}
	}
	var u User
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users(tg_id, username, first_name, role)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (tg_id) DO UPDATE SET username=EXCLUDED.username, first_name=EXCLUDED.first_name
		RETURNING `+userCols,
		tgID, username, firstName, string(role)).
		Scan(&u.ID, &u.TgID, &u.Username, &u.FirstName, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) ByTgID(ctx context.Context, tgID int64) (*User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE tg_id=$1`, tgID).
		Scan(&u.ID, &u.TgID, &u.Username, &u.FirstName, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) IsAdmin(ctx context.Context, tgID int64) (bool, error) {
	var ok bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE tg_id=$1 AND role=$2)`,
		tgID, string(RoleAdmin)).Scan(&ok)
	return ok, err
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.TgID, &u.Username, &u.FirstName, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) SetRole(ctx context.Context, id int64, role Role) error {
	tag, err := r.DB.Exec(ctx, `UPDATE users SET role=$2 WHERE id=$1`, id, string(role))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AllTgIDs feeds the broadcast fan-out.
func (r *Repo) AllTgIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.DB.Query(ctx, `SELECT tg_id FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
