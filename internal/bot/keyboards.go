package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniyarzr/Flower-bot/internal/catalog"
	"github.com/Daniyarzr/Flower-bot/internal/orders"
)

func btn(text, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, data)
}

func row(btns ...tgbotapi.InlineKeyboardButton) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(btns...)
}

func kbStart(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		row(btn("💐 Букеты", "cat:bouquet")),
		row(btn("🎁 Композиции", "cat:composition")),
		row(btn("📦 Мои заявки", "my:req:list")),
		row(btn("💬 Поддержка", "support")),
	}
	if isAdmin {
		rows = append(rows, row(btn("⚙️ Админ-панель", "admin:panel")))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func kbPriceFilters(cat catalog.Category, currency string) tgbotapi.InlineKeyboardMarkup {
	c := string(cat)
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn(fmt.Sprintf("До 2500 %s", currency), "filter:"+c+":0-2500")),
		row(btn(fmt.Sprintf("2500-4000 %s", currency), "filter:"+c+":2500-4000")),
		row(btn(fmt.Sprintf("4000-6000 %s", currency), "filter:"+c+":4000-6000")),
		row(btn(fmt.Sprintf("От 6000 %s", currency), "filter:"+c+":6000-0")),
		row(btn("Показать все", "filter:"+c+":all")),
		row(btn("🏠 В меню", "back:start")),
	)
}

// kbProductNav pages through one filtered listing. At the edges the arrows
// degrade to noop instead of wrapping around.
func kbProductNav(cat catalog.Category, rangeToken string, idx, total int, productID int64) tgbotapi.InlineKeyboardMarkup {
	prev, next := "noop", "noop"
	if idx > 0 {
		prev = fmt.Sprintf("nav:%s:%s:%d", cat, rangeToken, idx-1)
	}
	if idx < total-1 {
		next = fmt.Sprintf("nav:%s:%s:%d", cat, rangeToken, idx+1)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row(
			btn("⬅️", prev),
			btn(fmt.Sprintf("%d/%d", idx+1, total), "noop"),
			btn("➡️", next),
		),
		row(btn("🛒 Оформить заявку", "req:start:"+strconv.FormatInt(productID, 10))),
		row(btn("🔙 К фильтрам", "cat:"+string(cat)), btn("🏠 В меню", "back:start")),
	)
}

func kbEmptyListing(cat catalog.Category) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("🔙 К фильтрам", "cat:"+string(cat))),
		row(btn("🏠 В меню", "back:start")),
	)
}

func kbFlowCancel() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(btn("❌ Отменить", "req:cancel")))
}

func kbDelivery() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("🏬 Самовывоз", "req:delivery:pickup")),
		row(btn("🚚 Доставка", "req:delivery:courier")),
		row(btn("❌ Отменить", "req:cancel")),
	)
}

func kbPayment() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("💵 Наличные", "req:pay:cash")),
		row(btn("🏦 Перевод", "req:pay:transfer")),
		row(btn("💳 Карта", "req:pay:card")),
		row(btn("❌ Отменить", "req:cancel")),
	)
}

func kbComment() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("⏭ Пропустить", "req:skip_comment")),
		row(btn("❌ Отменить", "req:cancel")),
	)
}

func kbConfirm() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("✅ Подтвердить", "req:confirm:yes")),
		row(btn("✏️ Изменить", "req:edit"), btn("❌ Отменить", "req:cancel")),
	)
}

func kbAfterOrder() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("📦 Мои заявки", "my:req:list")),
		row(btn("🏠 В меню", "back:start")),
	)
}

func kbBackToStart() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(btn("🏠 В меню", "back:start")))
}

func kbMyOrders(list []orders.Detail) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(list)+1)
	for _, d := range list {
		label := fmt.Sprintf("%s №%d от %s", d.Status.Icon(), d.ID, d.CreatedAt.Format("02.01.06"))
		rows = append(rows, row(btn(label, fmt.Sprintf("my:req:view:%d", d.ID))))
	}
	rows = append(rows, row(btn("🏠 В меню", "back:start")))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func kbMyOrderView(id int64, canCancel bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if canCancel {
		rows = append(rows, row(btn("❌ Отменить заявку", fmt.Sprintf("my:req:cancel:%d", id))))
	}
	rows = append(rows, row(btn("🔙 К списку", "my:req:list")))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func kbConfirmCancel(id int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("✅ Да, отменить", fmt.Sprintf("my:req:cancel_yes:%d", id))),
		row(btn("↩️ Нет", fmt.Sprintf("my:req:view:%d", id))),
	)
}

func kbAdminPanel() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("🆕 Новые", "admin:req:list:new")),
		row(btn("⏳ В работе", "admin:req:list:in_work")),
		row(btn("✅ Завершённые", "admin:req:list:done")),
		row(btn("❌ Отменённые", "admin:req:list:canceled")),
		row(btn("🏠 В меню", "back:start")),
	)
}

func kbAdminQueue(list []orders.Order) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(list)+1)
	for _, o := range list {
		label := fmt.Sprintf("№%d • %s", o.ID, o.CreatedAt.Format("02.01 15:04"))
		rows = append(rows, row(btn(label, fmt.Sprintf("admin:req:view:%d", o.ID))))
	}
	rows = append(rows, row(btn("🔙 К панели", "admin:panel")))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

var statusAction = map[orders.Status]string{
	orders.StatusNew:      "🆕 Вернуть в новые",
	orders.StatusInWork:   "⏳ Взять в работу",
	orders.StatusDone:     "✅ Завершить",
	orders.StatusCanceled: "❌ Отменить",
}

// kbAdminOrderView offers every status except the current one.
func kbAdminOrderView(id int64, current orders.Status) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, st := range orders.AllStatuses {
		if st == current {
			continue
		}
		rows = append(rows, row(btn(statusAction[st], fmt.Sprintf("admin:req:status:%s:%d", st, id))))
	}
	rows = append(rows, row(btn("🔙 К списку", "admin:req:list:"+string(current))))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
