package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniyarzr/Flower-bot/internal/catalog"
	"github.com/Daniyarzr/Flower-bot/internal/flow"
	"github.com/Daniyarzr/Flower-bot/internal/orders"
	"github.com/Daniyarzr/Flower-bot/internal/texts"
)

func (b *Bot) orderCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	data := cq.Data
	switch {
	case strings.HasPrefix(data, "req:start:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, "req:start:"), 10, 64)
		if err != nil {
			b.answer(cq, "")
			return
		}
		b.startOrder(ctx, cq, id)
	case data == "req:edit":
		// the summary keeps an edit button, but editing never shipped
		b.alert(cq, "✏️ Изменение пока недоступно. Отмените заявку и начните заново.")
	case data == "req:cancel":
		b.feedEvent(ctx, cq, flow.Event{Kind: flow.EventCancel})
	case data == "req:confirm:yes":
		b.feedEvent(ctx, cq, flow.Event{Kind: flow.EventConfirm})
	case data == "req:skip_comment":
		b.feedEvent(ctx, cq, flow.Event{Kind: flow.EventSkip})
	case strings.HasPrefix(data, "req:delivery:"):
		b.feedEvent(ctx, cq, flow.Event{Kind: flow.EventChoice, Value: strings.TrimPrefix(data, "req:delivery:")})
	case strings.HasPrefix(data, "req:pay:"):
		b.feedEvent(ctx, cq, flow.Event{Kind: flow.EventChoice, Value: strings.TrimPrefix(data, "req:pay:")})
	default:
		b.answer(cq, "")
	}
}

func (b *Bot) startOrder(ctx context.Context, cq *tgbotapi.CallbackQuery, productID int64) {
	p, err := b.Products.Get(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		b.alert(cq, "😔 Этот товар уже недоступен.")
		return
	}
	if err != nil {
		log.Printf("load product %d: %v", productID, err)
		b.alert(cq, "⚠️ Попробуйте ещё раз чуть позже.")
		return
	}
	if !p.IsActive {
		b.alert(cq, "😔 Этот товар уже недоступен.")
		return
	}
	res := flow.Start(productID)
	b.Sessions.Put(cq.Message.Chat.ID, Session{State: res.State, Draft: res.Draft})
	b.editOrSend(cq.Message.Chat.ID, cq.Message.MessageID, b.promptText(ctx, res), promptKeyboard(res))
	b.answer(cq, "")
}

// feedEvent pushes a button press into the capture flow.
func (b *Bot) feedEvent(ctx context.Context, cq *tgbotapi.CallbackQuery, ev flow.Event) {
	chatID := cq.Message.Chat.ID
	sess := b.Sessions.Get(chatID)
	if sess.State == flow.StateIdle {
		// pressed on a stale keyboard, e.g. after a restart
		b.alert(cq, "Эта заявка уже не активна. Начните заново из каталога.")
		return
	}
	res := flow.Advance(sess.State, sess.Draft, ev)
	b.applyResult(ctx, chatID, cq, res)
	b.answer(cq, "")
}

// feedText pushes a typed reply into the capture flow.
func (b *Bot) feedText(ctx context.Context, m *tgbotapi.Message, sess Session) {
	res := flow.Advance(sess.State, sess.Draft, flow.Event{Kind: flow.EventText, Value: m.Text})
	b.applyResult(ctx, m.Chat.ID, nil, res)
}

// applyResult renders one flow step. With a callback at hand the screen is
// edited in place, otherwise (typed answers) a new message goes out.
func (b *Bot) applyResult(ctx context.Context, chatID int64, cq *tgbotapi.CallbackQuery, res flow.Result) {
	switch res.Outcome {
	case flow.OutcomeCanceled:
		b.Sessions.Clear(chatID)
		kb := kbBackToStart()
		if cq != nil {
			b.editOrSend(chatID, cq.Message.MessageID, "❌ Заявка отменена.", &kb)
		} else {
			b.send(chatID, "❌ Заявка отменена.", kb)
		}
		return
	case flow.OutcomeCommit:
		b.commitOrder(ctx, chatID, cq, res.Draft)
		return
	}

	b.Sessions.Put(chatID, Session{State: res.State, Draft: res.Draft})
	text := b.promptText(ctx, res)
	kb := promptKeyboard(res)
	if cq != nil {
		b.editOrSend(chatID, cq.Message.MessageID, text, kb)
	} else {
		b.send(chatID, text, *kb)
	}
}

// commitOrder persists the confirmed draft. Confirm only arrives from the
// summary keyboard, so cq is always present here.
func (b *Bot) commitOrder(ctx context.Context, chatID int64, cq *tgbotapi.CallbackQuery, d flow.Draft) {
	retry := func(note string) {
		b.Sessions.Put(chatID, Session{State: flow.StateConfirm, Draft: d})
		kb := kbConfirm()
		b.editOrSend(chatID, cq.Message.MessageID, note+"\n\n"+b.confirmSummary(ctx, d), &kb)
	}

	u, err := b.Users.Upsert(ctx, cq.From.ID, cq.From.UserName, cq.From.FirstName, b.Config.AdminIDs)
	if err != nil {
		log.Printf("upsert user %d: %v", cq.From.ID, err)
		retry("⚠️ Не удалось отправить заявку. Попробуйте ещё раз.")
		return
	}
	productID := d.ProductID
	o := &orders.Order{
		UserID:       u.ID,
		ProductID:    &productID,
		Status:       orders.StatusNew,
		CustomerName: d.CustomerName,
		Phone:        d.Phone,
		Delivery:     d.Delivery,
		Address:      d.Address,
		Payment:      d.Payment,
		Comment:      d.Comment,
		NeedDate:     d.NeedDate,
	}
	if err := b.Orders.Create(ctx, o); err != nil {
		log.Printf("create order for %d: %v", cq.From.ID, err)
		retry("⚠️ Не удалось отправить заявку. Попробуйте ещё раз.")
		return
	}

	b.Sessions.Clear(chatID)
	doneText, err := b.Texts.Get(ctx, texts.KeyOrderDone)
	if err != nil {
		doneText = texts.Default(texts.KeyOrderDone)
	}
	kb := kbAfterOrder()
	b.editOrSend(chatID, cq.Message.MessageID,
		fmt.Sprintf("%s\n\n📦 Номер вашей заявки: <b>№%d</b>", doneText, o.ID), &kb)

	// operators are told after the commit, never as part of it
	go b.Notify.Notify(context.Background(), fmt.Sprintf("🆕 Новая заявка №%d!", o.ID))
}

func promptKeyboard(res flow.Result) *tgbotapi.InlineKeyboardMarkup {
	var kb tgbotapi.InlineKeyboardMarkup
	switch res.Prompt {
	case flow.PromptDelivery:
		kb = kbDelivery()
	case flow.PromptPayment:
		kb = kbPayment()
	case flow.PromptComment:
		kb = kbComment()
	case flow.PromptConfirm:
		kb = kbConfirm()
	default:
		kb = kbFlowCancel()
	}
	return &kb
}

func (b *Bot) promptText(ctx context.Context, res flow.Result) string {
	var sb strings.Builder
	if res.Err != nil {
		sb.WriteString(flowErrText(res.Err) + "\n\n")
	}
	switch res.Prompt {
	case flow.PromptDate:
		sb.WriteString("📅 К какой дате нужен букет?\nНапишите в формате <b>31.12.2025</b>")
	case flow.PromptDelivery:
		sb.WriteString("🚚 Как удобнее получить заказ?")
	case flow.PromptAddress:
		sb.WriteString("📍 Напишите адрес доставки:")
	case flow.PromptPayment:
		sb.WriteString("💳 Выберите способ оплаты:")
	case flow.PromptName:
		sb.WriteString("👤 Как вас зовут?")
	case flow.PromptPhone:
		sb.WriteString("📞 Оставьте номер телефона для связи:")
	case flow.PromptComment:
		sb.WriteString("💬 Добавите комментарий к заказу?")
	case flow.PromptConfirm:
		sb.WriteString(b.confirmSummary(ctx, res.Draft))
	}
	return sb.String()
}

func flowErrText(err error) string {
	switch {
	case errors.Is(err, flow.ErrBadDate):
		return "❌ Не получилось разобрать дату."
	case errors.Is(err, flow.ErrEmpty):
		return "❌ Ответ не должен быть пустым."
	default:
		return "❌ Выберите вариант на клавиатуре."
	}
}

func (b *Bot) confirmSummary(ctx context.Context, d flow.Draft) string {
	title := "—"
	var price int64
	if p, err := b.Products.Get(ctx, d.ProductID); err == nil {
		title = p.Title
		price = p.Price
	}
	return draftSummary(d, title, price, b.Config.Currency)
}
