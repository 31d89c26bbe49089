package users

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) Human() string {
	if r == RoleAdmin {
		return "Оператор"
	}
	return "Клиент"
}

type User struct {
	ID        int64
	TgID      int64
	Username  string
	FirstName string
	Role      Role
	CreatedAt time.Time
}
