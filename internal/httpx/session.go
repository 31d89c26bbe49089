package httpx

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Daniyarzr/Flower-bot/internal/redisx"
)

const sessionCookie = "flower_session"

// SessionManager keeps back-office logins in Redis, so a restart does not
// log every operator out and tokens expire on their own.
type SessionManager struct {
	RDB *redis.Client
}

func (s *SessionManager) Create(ctx context.Context) (string, error) {
	token := uuid.NewString()
	key := fmt.Sprintf(redisx.KeyAdminSession, token)
	if err := s.RDB.Set(ctx, key, "1", redisx.TTLAdminSession).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *SessionManager) Valid(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	ok, err := redisx.Exists(ctx, s.RDB, fmt.Sprintf(redisx.KeyAdminSession, token))
	return err == nil && ok
}

func (s *SessionManager) Destroy(ctx context.Context, token string) {
	_ = s.RDB.Del(ctx, fmt.Sprintf(redisx.KeyAdminSession, token)).Err()
}

func sessionToken(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}
