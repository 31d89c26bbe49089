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

const myOrdersLimit = 10

func (b *Bot) myOrdersCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	data := cq.Data
	switch {
	case data == "my:req:list":
		b.showMyOrders(ctx, cq)
	case strings.HasPrefix(data, "my:req:view:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, "my:req:view:"), 10, 64)
		if err != nil {
			b.answer(cq, "")
			return
		}
		b.renderMyOrder(ctx, cq, id)
		b.answer(cq, "")
	case strings.HasPrefix(data, "my:req:cancel_yes:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, "my:req:cancel_yes:"), 10, 64)
		if err != nil {
			b.answer(cq, "")
			return
		}
		b.cancelMyOrder(ctx, cq, id)
	case strings.HasPrefix(data, "my:req:cancel:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, "my:req:cancel:"), 10, 64)
		if err != nil {
			b.answer(cq, "")
			return
		}
		b.askCancelMyOrder(ctx, cq, id)
	default:
		b.answer(cq, "")
	}
}

func (b *Bot) showMyOrders(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	list, err := b.Orders.ListByUser(ctx, cq.From.ID, myOrdersLimit)
	if err != nil {
		log.Printf("list orders for %d: %v", cq.From.ID, err)
		b.alert(cq, "⚠️ Не удалось загрузить заявки.")
		return
	}
	chatID, msgID := cq.Message.Chat.ID, cq.Message.MessageID
	if len(list) == 0 {
		kb := kbBackToStart()
		b.editOrSend(chatID, msgID, "📭 У вас пока нет заявок.", &kb)
		b.answer(cq, "")
		return
	}
	kb := kbMyOrders(list)
	b.editOrSend(chatID, msgID, fmt.Sprintf("📦 <b>Ваши заявки</b>\nПоследние %d:", myOrdersLimit), &kb)
	b.answer(cq, "")
}

// renderMyOrder shows one order to its owner. Anyone else gets turned away
// without learning whether the id exists.
func (b *Bot) renderMyOrder(ctx context.Context, cq *tgbotapi.CallbackQuery, id int64) {
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
	if det.UserTgID != cq.From.ID {
		b.alert(cq, "🚫 Нет доступа к этой заявке.")
		return
	}
	kb := kbMyOrderView(det.ID, det.Status.UserCanCancel())
	b.editOrSend(cq.Message.Chat.ID, cq.Message.MessageID, orderDetail(*det, b.Config.Currency, false), &kb)
}

func (b *Bot) askCancelMyOrder(ctx context.Context, cq *tgbotapi.CallbackQuery, id int64) {
	det, err := b.Orders.Detail(ctx, id)
	if err != nil {
		log.Printf("load order %d: %v", id, err)
		b.alert(cq, "⚠️ Не удалось загрузить заявку.")
		return
	}
	if det.UserTgID != cq.From.ID {
		b.alert(cq, "🚫 Нет доступа к этой заявке.")
		return
	}
	if !det.Status.UserCanCancel() {
		b.alert(cq, "😕 Эту заявку уже нельзя отменить.")
		return
	}
	kb := kbConfirmCancel(id)
	b.editOrSend(cq.Message.Chat.ID, cq.Message.MessageID,
		fmt.Sprintf("Точно отменить заявку №%d?", id), &kb)
	b.answer(cq, "")
}

func (b *Bot) cancelMyOrder(ctx context.Context, cq *tgbotapi.CallbackQuery, id int64) {
	err := b.Orders.CancelOwn(ctx, id, cq.From.ID)
	switch {
	case errors.Is(err, orders.ErrNotCancelable):
		// taken into work while the confirmation was on screen
		b.alert(cq, "😕 Эту заявку уже нельзя отменить.")
	case err != nil:
		log.Printf("cancel order %d: %v", id, err)
		b.alert(cq, "⚠️ Не получилось, попробуйте ещё раз.")
		return
	default:
		b.answer(cq, "Заявка отменена")
	}
	b.renderMyOrder(ctx, cq, id)
}
