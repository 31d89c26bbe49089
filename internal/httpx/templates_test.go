package httpx

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Daniyarzr/Flower-bot/internal/catalog"
	"github.com/Daniyarzr/Flower-bot/internal/orders"
	"github.com/Daniyarzr/Flower-bot/internal/users"
)

func testHead(active string) pageHead {
	return pageHead{Shop: "Цветочная лавка", Active: active, Currency: "₽"}
}

func renderToString(t *testing.T, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return buf.String()
}

func TestLoginPage(t *testing.T) {
	out := renderToString(t, "login.html", loginPageData{pageHead: testHead("")})
	if !strings.Contains(out, "Пароль администратора") {
		t.Error("no password prompt")
	}
	if strings.Contains(out, "Неверный пароль") {
		t.Error("error shown without error")
	}

	out = renderToString(t, "login.html", loginPageData{pageHead: testHead(""), Error: "Неверный пароль"})
	if !strings.Contains(out, "Неверный пароль") {
		t.Error("error not shown")
	}
}

func TestDashboardPage(t *testing.T) {
	out := renderToString(t, "dashboard.html", dashboardData{
		pageHead: testHead("dashboard"),
		New:      3,
		InWork:   1,
		Users:    42,
		Texts: []textRow{
			{Key: "start", Label: "Приветствие", Value: "Добро пожаловать!"},
		},
		Flash: "Сохранено",
	})
	for _, want := range []string{"Сохранено", "Добро пожаловать!", "Новые заявки", "Рассылка", ">42<"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestCatalogPage(t *testing.T) {
	out := renderToString(t, "catalog.html", catalogData{
		pageHead: testHead("catalog"),
		Products: []catalog.Product{
			{ID: 1, Title: "Ромашки", Price: 1500, Category: catalog.CategoryBouquet, IsActive: true, ImageURL: "/static/uploads/a.jpg"},
			{ID: 2, Title: "Корзина", Price: 6000, Category: catalog.CategoryComposition, IsActive: false},
		},
	})
	for _, want := range []string{"Ромашки", "1500 ₽", "Букет", "Композиция", "Скрыть", "Показать", "/catalog/1/edit", "/static/uploads/a.jpg"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog missing %q", want)
		}
	}
}

func TestCatalogPageEmpty(t *testing.T) {
	out := renderToString(t, "catalog.html", catalogData{pageHead: testHead("catalog")})
	if !strings.Contains(out, "Товаров пока нет") {
		t.Error("no empty-state message")
	}
}

func TestProductFormPage(t *testing.T) {
	out := renderToString(t, "product_form.html", productFormData{
		pageHead:      testHead("catalog"),
		Product:       catalog.Product{ID: 7, Title: "Пионы", Price: 4200, Category: catalog.CategoryComposition},
		CategoryValue: "composition",
	})
	if !strings.Contains(out, `value="composition" selected`) {
		t.Error("current category not selected")
	}
	if strings.Contains(out, `value="bouquet" selected`) {
		t.Error("wrong category selected")
	}
	if !strings.Contains(out, "/catalog/7/edit") {
		t.Error("form action missing product id")
	}
}

func TestOrdersPage(t *testing.T) {
	now := time.Date(2025, 3, 8, 12, 30, 0, 0, time.UTC)
	out := renderToString(t, "orders.html", ordersData{
		pageHead: testHead("orders"),
		Orders: []orders.Detail{
			{
				Order: orders.Order{
					ID: 12, Status: orders.StatusInWork, CustomerName: "Анна",
					Phone: "+79990001122", Delivery: orders.DeliveryCourier,
					Address: "ул. Ленина, 5", Payment: orders.PaymentCard,
					Comment: "к 10 утра", NeedDate: now, CreatedAt: now,
				},
				ProductTitle: "Пионы", ProductPrice: 4200, Username: "anna",
			},
			{
				Order: orders.Order{
					ID: 13, Status: orders.StatusNew, CustomerName: "Борис",
					Phone: "+79990003344", Delivery: orders.DeliveryPickup,
					Payment: orders.PaymentCash, NeedDate: now, CreatedAt: now,
				},
			},
		},
		Statuses: orders.AllStatuses,
	})
	for _, want := range []string{
		"Пионы", "4200 ₽", "@anna", "ул. Ленина, 5", "к 10 утра",
		"08.03.2025", "товар удалён", "/orders/12/status", "/orders/13/delete",
		`value="in_work" selected`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("orders missing %q", want)
		}
	}
	if strings.Contains(out, `value="done" selected`) {
		t.Error("wrong status selected")
	}
}

func TestUsersPage(t *testing.T) {
	out := renderToString(t, "users.html", usersData{
		pageHead: testHead("users"),
		Users: []users.User{
			{ID: 1, TgID: 100500, Username: "anna", FirstName: "Анна", Role: users.RoleAdmin, CreatedAt: time.Now()},
			{ID: 2, TgID: 100501, Role: users.RoleUser, CreatedAt: time.Now()},
		},
		Roles: []users.Role{users.RoleUser, users.RoleAdmin},
	})
	for _, want := range []string{"@anna", "100500", "Оператор", "Клиент", `value="admin" selected`, "/users/2/role"} {
		if !strings.Contains(out, want) {
			t.Errorf("users missing %q", want)
		}
	}
}
