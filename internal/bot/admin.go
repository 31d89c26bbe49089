package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniyarzr/Flower-bot/internal/orders"
)

const adminQueueLimit = 50

// adminCallback gates every admin:* screen behind the cached role check.
func (b *Bot) adminCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	admin, err := b.Roles.IsAdmin(ctx, cq.From.ID)
	if err != nil {
		log.Printf("role check %d: %v", cq.From.ID, err)
	}
	if !admin {
		b.alert(cq, "🚫 Доступ только для операторов.")
		return
	}

	data := cq.Data
	switch {
	case data == "admin:panel":
		kb := kbAdminPanel()
		b.editOrSend(cq.Message.Chat.ID, cq.Message.MessageID, "⚙️ <b>Панель оператора</b>\nВыберите очередь:", &kb)
		b.answer(cq, "")
	case strings.HasPrefix(data, "admin:req:list:"):
		st, ok := orders.ParseStatus(strings.TrimPrefix(data, "admin:req:list:"))
		if !ok {
			b.answer(cq, "")
			return
		}
		b.showAdminQueue(ctx, cq, st)
	case strings.HasPrefix(data, "admin:req:view:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, "admin:req:view:"), 10, 64)
		if err != nil {
			b.answer(cq, "")
			return
		}
		b.renderAdminOrder(ctx, cq, id)
		b.answer(cq, "")
	case strings.HasPrefix(data, "admin:req:status:"):
		// admin:req:status:<status>:<id>
		rawStatus, rawID, ok := strings.Cut(strings.TrimPrefix(data, "admin:req:status:"), ":")
		if !ok {
			b.answer(cq, "")
			return
		}
		st, okStatus := orders.ParseStatus(rawStatus)
		id, err := strconv.ParseInt(rawID, 10, 64)
		if !okStatus || err != nil {
			b.answer(cq, "")
			return
		}
		b.setOrderStatus(ctx, cq, id, st)
	default:
		b.answer(cq, "")
	}
}

func (b *Bot) showAdminQueue(ctx context.Context, cq *tgbotapi.CallbackQuery, st orders.Status) {
	list, err := b.Orders.ListByStatus(ctx, st, adminQueueLimit)
	if err != nil {
		log.Printf("admin queue %s: %v", st, err)
		b.alert(cq, "⚠️ Не удалось загрузить очередь.")
		return
	}
	text := fmt.Sprintf("📋 <b>%s</b>: %d шт.", st.Human(), len(list))
	if len(list) == 0 {
		text = fmt.Sprintf("📋 <b>%s</b>: пусто.", st.Human())
	}
	kb := kbAdminQueue(list)
	b.editOrSend(cq.Message.Chat.ID, cq.Message.MessageID, text, &kb)
	b.answer(cq, "")
}

func (b *Bot) renderAdminOrder(ctx context.Context, cq *tgbotapi.CallbackQuery, id int64) {
	det, err := b.Orders.Detail(ctx, id)
	if errors.Is(err, orders.ErrNotFound) {
		b.alert(cq, "Заявка не найдена.")
		return
	}
	if err != nil {
		log.Printf("load order %d: %v", id, err)
		b.alert(cq, "⚠️ Не удалось загрузить заявку.")
		return
	}
	kb := kbAdminOrderView(det.ID, det.Status)
	b.editOrSend(cq.Message.Chat.ID, cq.Message.MessageID, orderDetail(*det, b.Config.Currency, true), &kb)
}

func (b *Bot) setOrderStatus(ctx context.Context, cq *tgbotapi.CallbackQuery, id int64, st orders.Status) {
	err := b.Orders.UpdateStatus(ctx, id, st)
	switch {
	case errors.Is(err, orders.ErrNotFound):
		b.alert(cq, "Заявка не найдена.")
		return
	case err != nil:
		log.Printf("set order %d status %s: %v", id, st, err)
		b.alert(cq, "⚠️ Не получилось обновить статус.")
		return
	}
	b.answer(cq, "Статус обновлён")
	b.renderAdminOrder(ctx, cq, id)
}
