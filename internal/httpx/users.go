package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Daniyarzr/Flower-bot/internal/users"
)

type usersData struct {
	pageHead
	Users []users.User
	Roles []users.Role
	Flash string
}

func (h *Handler) usersPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	list, err := h.Users.List(ctx)
	if err != nil {
		h.fail(w, "users: list", err)
		return
	}
	data := usersData{
		pageHead: h.head("users"),
		Users:    list,
		Roles:    []users.Role{users.RoleUser, users.RoleAdmin},
	}
	if r.URL.Query().Get("saved") == "1" {
		data.Flash = "Сохранено"
	}
	render(w, "users.html", data)
}

func (h *Handler) setUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	role, ok := users.ParseRole(r.FormValue("role"))
	if !ok {
		http.Error(w, "неизвестная роль", http.StatusBadRequest)
		return
	}
	err = h.Users.SetRole(ctx, id, role)
	if errors.Is(err, users.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, "users: set role", err)
		return
	}
	http.Redirect(w, r, "/users?saved=1", http.StatusFound)
}
