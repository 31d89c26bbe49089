package texts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Keys of the texts the back office may override.
const (
	KeyStart     = "start_message"
	KeySupport   = "support_message"
	KeyOrderDone = "order_done_message"
)

var defaults = map[string]string{
	KeyStart:     "Привет! 🌸 Выберите, что вас интересует:",
	KeySupport:   "Если возникли вопросы, напишите нам — ответим быстро!",
	KeyOrderDone: "🎉 Заявка отправлена! Мы свяжемся с вами для подтверждения.",
}

// Keys in the order the back office form lists them.
func Keys() []string {
	return []string{KeyStart, KeySupport, KeyOrderDone}
}

// Default returns the built-in text for a key, empty for unknown keys.
func Default(key string) string {
	return defaults[key]
}

type Repo struct{ DB *pgxpool.Pool }

// Get returns the stored override or the built-in default. Unknown keys
// yield an empty string rather than an error.
func (r *Repo) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := r.DB.QueryRow(ctx, `SELECT value FROM bot_texts WHERE key=$1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return defaults[key], nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *Repo) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO bot_texts(key, value) VALUES ($1,$2)
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()`,
		key, value)
	return err
}

// All returns every known key with overrides applied, for the editor form.
func (r *Repo) All(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	rows, err := r.DB.Query(ctx, `SELECT key, value FROM bot_texts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}
