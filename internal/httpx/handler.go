package httpx

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/Daniyarzr/Flower-bot/internal/catalog"
	"github.com/Daniyarzr/Flower-bot/internal/config"
	"github.com/Daniyarzr/Flower-bot/internal/notify"
	"github.com/Daniyarzr/Flower-bot/internal/orders"
	"github.com/Daniyarzr/Flower-bot/internal/redisx"
	"github.com/Daniyarzr/Flower-bot/internal/texts"
	"github.com/Daniyarzr/Flower-bot/internal/users"
)

const (
	dbTimeout        = 5 * time.Second
	broadcastTimeout = 10 * time.Second
	broadcastWorkers = 16
)

type Handler struct {
	Config   config.Config
	Products *catalog.Repo
	Orders   *orders.Repo
	Users    *users.Repo
	Texts    *texts.Repo
	Marker   *redisx.VersionMarker
	Sessions *SessionManager
	Bot      notify.Sender
	Validate *validator.Validate
}

func (h *Handler) Register(r *chi.Mux) {
	r.Get("/", h.loginPage)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	uploads := http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(h.Config.UploadDir)))
	r.Get("/static/uploads/*", uploads.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/dashboard", h.dashboard)
		r.Post("/texts", h.saveText)
		r.Post("/broadcast", h.broadcast)

		r.Get("/catalog", h.catalogPage)
		r.Post("/catalog", h.createProduct)
		r.Get("/catalog/{id}/edit", h.editProductPage)
		r.Post("/catalog/{id}/edit", h.updateProduct)
		r.Post("/catalog/{id}/delete", h.deleteProduct)
		r.Post("/catalog/{id}/toggle", h.toggleProduct)

		r.Get("/orders", h.ordersPage)
		r.Post("/orders/{id}/status", h.setOrderStatus)
		r.Post("/orders/{id}/delete", h.deleteOrder)

		r.Get("/users", h.usersPage)
		r.Post("/users/{id}/role", h.setUserRole)
	})
}

func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Sessions.Valid(r.Context(), sessionToken(r)) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) head(active string) pageHead {
	return pageHead{Shop: h.Config.ShopName, Active: active, Currency: h.Config.Currency}
}

type loginPageData struct {
	pageHead
	Error string
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if h.Sessions.Valid(r.Context(), sessionToken(r)) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	data := loginPageData{pageHead: h.head("")}
	if r.URL.Query().Get("error") == "1" {
		data.Error = "Неверный пароль"
	}
	render(w, "login.html", data)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	got := []byte(r.FormValue("password"))
	want := []byte(h.Config.AdminPassword)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		http.Redirect(w, r, "/?error=1", http.StatusFound)
		return
	}
	token, err := h.Sessions.Create(r.Context())
	if err != nil {
		log.Printf("httpx: create session: %v", err)
		http.Error(w, "внутренняя ошибка", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(redisx.TTLAdminSession.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		h.Sessions.Destroy(r.Context(), token)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.Redirect(w, r, "/", http.StatusFound)
}

type textRow struct {
	Key   string
	Label string
	Value string
}

var textLabels = map[string]string{
	texts.KeyStart:     "Приветствие",
	texts.KeySupport:   "Поддержка",
	texts.KeyOrderDone: "Заявка принята",
}

type dashboardData struct {
	pageHead
	New      int
	InWork   int
	Done     int
	Canceled int
	Products int
	Users    int
	Texts    []textRow
	Flash    string
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	data := dashboardData{pageHead: h.head("dashboard")}

	counts, err := h.Orders.CountByStatus(ctx)
	if err != nil {
		h.fail(w, "dashboard: count orders", err)
		return
	}
	data.New = counts[orders.StatusNew]
	data.InWork = counts[orders.StatusInWork]
	data.Done = counts[orders.StatusDone]
	data.Canceled = counts[orders.StatusCanceled]

	if data.Products, err = h.Products.CountAll(ctx); err != nil {
		h.fail(w, "dashboard: count products", err)
		return
	}
	if data.Users, err = h.Users.Count(ctx); err != nil {
		h.fail(w, "dashboard: count users", err)
		return
	}

	all, err := h.Texts.All(ctx)
	if err != nil {
		h.fail(w, "dashboard: texts", err)
		return
	}
	for _, key := range texts.Keys() {
		data.Texts = append(data.Texts, textRow{Key: key, Label: textLabels[key], Value: all[key]})
	}

	q := r.URL.Query()
	switch {
	case q.Get("saved") == "1":
		data.Flash = "Сохранено"
	case q.Get("sent") != "":
		data.Flash = fmt.Sprintf("Рассылка: доставлено %s, ошибок %s", q.Get("sent"), q.Get("failed"))
	}

	render(w, "dashboard.html", data)
}

func (h *Handler) saveText(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	key := r.FormValue("key")
	if _, ok := textLabels[key]; !ok {
		http.Error(w, "неизвестный текст", http.StatusBadRequest)
		return
	}
	value := r.FormValue("value")
	if value == "" {
		value = texts.Default(key)
	}
	if err := h.Texts.Set(ctx, key, value); err != nil {
		h.fail(w, "save text", err)
		return
	}
	http.Redirect(w, r, "/dashboard?saved=1", http.StatusFound)
}

// broadcast pushes one message to every known chat. Blocked bots and dead
// chats are counted, not retried.
func (h *Handler) broadcast(w http.ResponseWriter, r *http.Request) {
	message := r.FormValue("message")
	if message == "" {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), broadcastTimeout)
	defer cancel()

	ids, err := h.Users.AllTgIDs(ctx)
	if err != nil {
		h.fail(w, "broadcast: list chats", err)
		return
	}

	var sent, failed int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(broadcastWorkers)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := h.Bot.Send(gctx, id, message); err != nil {
				atomic.AddInt64(&failed, 1)
				log.Printf("httpx: broadcast to %d: %v", id, err)
				return nil
			}
			atomic.AddInt64(&sent, 1)
			return nil
		})
	}
	_ = g.Wait()

	http.Redirect(w, r, fmt.Sprintf("/dashboard?sent=%d&failed=%d", sent, failed), http.StatusFound)
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	log.Printf("httpx: %s: %v", msg, err)
	http.Error(w, "внутренняя ошибка", http.StatusInternalServerError)
}
