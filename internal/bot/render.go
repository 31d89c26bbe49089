package bot

import (
	"fmt"
	"html"
	"strings"

	"github.com/Daniyarzr/Flower-bot/internal/catalog"
	"github.com/Daniyarzr/Flower-bot/internal/flow"
	"github.com/Daniyarzr/Flower-bot/internal/orders"
)

func productCard(p catalog.Product, currency string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>\n", html.EscapeString(p.Title))
	if p.Description != "" {
		sb.WriteString(html.EscapeString(p.Description) + "\n")
	}
	fmt.Fprintf(&sb, "\n💰 <b>%d %s</b>", p.Price, currency)
	return sb.String()
}

// draftSummary is the confirmation screen shown before committing.
func draftSummary(d flow.Draft, productTitle string, price int64, currency string) string {
	var sb strings.Builder
	sb.WriteString("📝 <b>Проверьте заявку:</b>\n\n")
	fmt.Fprintf(&sb, "💐 %s", html.EscapeString(productTitle))
	if price > 0 {
		fmt.Fprintf(&sb, " • %d %s", price, currency)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "📅 К дате: %s\n", d.NeedDate.Format(flow.DateLayout))
	fmt.Fprintf(&sb, "🚚 Получение: %s\n", d.Delivery.Human())
	if d.Delivery == orders.DeliveryCourier {
		fmt.Fprintf(&sb, "📍 Адрес: %s\n", html.EscapeString(d.Address))
	}
	fmt.Fprintf(&sb, "💳 Оплата: %s\n", d.Payment.Human())
	fmt.Fprintf(&sb, "👤 Имя: %s\n", html.EscapeString(d.CustomerName))
	fmt.Fprintf(&sb, "📞 Телефон: %s\n", html.EscapeString(d.Phone))
	if d.Comment != "" {
		fmt.Fprintf(&sb, "💬 Комментарий: %s\n", html.EscapeString(d.Comment))
	}
	return sb.String()
}

// orderDetail renders one stored order. Operators additionally see who
// submitted it.
func orderDetail(det orders.Detail, currency string, operator bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 <b>Заявка №%d</b> • %s\n\n", det.ID, det.Status.Human())
	title := det.ProductTitle
	if title == "" {
		title = "товар удалён"
	}
	fmt.Fprintf(&sb, "💐 %s", html.EscapeString(title))
	if det.ProductPrice > 0 {
		fmt.Fprintf(&sb, " • %d %s", det.ProductPrice, currency)
	}
	sb.WriteString("\n")
	if !det.NeedDate.IsZero() {
		fmt.Fprintf(&sb, "📅 К дате: %s\n", det.NeedDate.Format(flow.DateLayout))
	}
	fmt.Fprintf(&sb, "🚚 Получение: %s\n", det.Delivery.Human())
	if det.Delivery == orders.DeliveryCourier && det.Address != "" {
		fmt.Fprintf(&sb, "📍 Адрес: %s\n", html.EscapeString(det.Address))
	}
	fmt.Fprintf(&sb, "💳 Оплата: %s\n", det.Payment.Human())
	fmt.Fprintf(&sb, "👤 Имя: %s\n", html.EscapeString(det.CustomerName))
	fmt.Fprintf(&sb, "📞 Телефон: %s\n", html.EscapeString(det.Phone))
	if det.Comment != "" {
		fmt.Fprintf(&sb, "💬 Комментарий: %s\n", html.EscapeString(det.Comment))
	}
	fmt.Fprintf(&sb, "🕒 Создана: %s", det.CreatedAt.Format("02.01.2006 15:04"))
	if operator {
		who := fmt.Sprintf("id %d", det.UserTgID)
		if det.Username != "" {
			who = "@" + det.Username
		}
		fmt.Fprintf(&sb, "\n🙋 Клиент: %s", html.EscapeString(who))
	}
	return sb.String()
}
