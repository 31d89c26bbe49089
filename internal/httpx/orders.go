package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Daniyarzr/Flower-bot/internal/orders"
)

const ordersPageLimit = 50

type ordersData struct {
	pageHead
	Orders   []orders.Detail
	Statuses []orders.Status
	Flash    string
}

func (h *Handler) ordersPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	list, err := h.Orders.ListRecent(ctx, ordersPageLimit)
	if err != nil {
		h.fail(w, "orders: list", err)
		return
	}
	data := ordersData{
		pageHead: h.head("orders"),
		Orders:   list,
		Statuses: orders.AllStatuses,
	}
	if r.URL.Query().Get("saved") == "1" {
		data.Flash = "Сохранено"
	}
	render(w, "orders.html", data)
}

func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	st, ok := orders.ParseStatus(r.FormValue("status"))
	if !ok {
		http.Error(w, "неизвестный статус", http.StatusBadRequest)
		return
	}
	err = h.Orders.UpdateStatus(ctx, id, st)
	if errors.Is(err, orders.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, "orders: set status", err)
		return
	}
	http.Redirect(w, r, "/orders?saved=1", http.StatusFound)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	err = h.Orders.Delete(ctx, id)
	if errors.Is(err, orders.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, "orders: delete", err)
		return
	}
	http.Redirect(w, r, "/orders?saved=1", http.StatusFound)
}
