// Package bot is the Telegram front end: it polls updates, keeps per-chat
// capture sessions and renders the catalog and order screens.
package bot

import (
	"context"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniyarzr/Flower-bot/internal/catalog"
	"github.com/Daniyarzr/Flower-bot/internal/config"
	"github.com/Daniyarzr/Flower-bot/internal/flow"
	"github.com/Daniyarzr/Flower-bot/internal/notify"
	"github.com/Daniyarzr/Flower-bot/internal/orders"
	"github.com/Daniyarzr/Flower-bot/internal/texts"
	"github.com/Daniyarzr/Flower-bot/internal/users"
)

const handlerTimeout = 10 * time.Second

type Bot struct {
	API      *tgbotapi.BotAPI
	Config   config.Config
	Sessions *Sessions
	Catalog  *catalog.Cache
	Products *catalog.Repo
	Orders   *orders.Repo
	Users    *users.Repo
	Roles    *users.RoleCache
	Texts    *texts.Repo
	Notify   *notify.Notifier
}

// Run polls Telegram until the context is canceled. Every update gets its
// own goroutine, so a slow or failing handler stalls only its conversation.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.API.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.API.StopReceivingUpdates()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(parent context.Context, upd tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("handler panic: %v", r)
		}
	}()
	ctx, cancel := context.WithTimeout(parent, handlerTimeout)
	defer cancel()

	switch {
	case upd.Message != nil:
		b.handleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.From == nil {
		return
	}
	if m.IsCommand() {
		if m.Command() == "start" {
			b.handleStart(ctx, m)
		}
		return
	}
	sess := b.Sessions.Get(m.Chat.ID)
	if sess.State != flow.StateIdle {
		b.feedText(ctx, m, sess)
	}
	// stray text outside a flow is ignored
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.From == nil {
		b.answer(cq, "")
		return
	}
	data := cq.Data
	switch {
	case data == "noop":
		b.answer(cq, "")
	case data == "support":
		b.showSupport(ctx, cq)
	case data == "back:start":
		b.showStart(ctx, cq)
	case strings.HasPrefix(data, "cat:"):
		b.showPriceFilters(cq, strings.TrimPrefix(data, "cat:"))
	case strings.HasPrefix(data, "filter:"):
		b.openListing(ctx, cq, strings.TrimPrefix(data, "filter:"))
	case strings.HasPrefix(data, "nav:"):
		b.navigateListing(ctx, cq, strings.TrimPrefix(data, "nav:"))
	case strings.HasPrefix(data, "req:"):
		b.orderCallback(ctx, cq)
	case strings.HasPrefix(data, "my:req:"):
		b.myOrdersCallback(ctx, cq)
	case strings.HasPrefix(data, "admin:"):
		b.adminCallback(ctx, cq)
	default:
		b.answer(cq, "")
	}
}

// Messenger is the outbound half of the transport. The notifier and the
// back-office broadcast share it.
type Messenger struct{ API *tgbotapi.BotAPI }

func (m Messenger) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := m.API.Send(msg)
	return err
}

func (b *Bot) send(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.API.Send(msg); err != nil {
		log.Printf("send to %d: %v", chatID, err)
	}
}

// editOrSend rewrites the screen in place. When Telegram refuses the edit
// (photo captions, deleted messages) the old message is dropped and the
// screen is sent fresh.
func (b *Bot) editOrSend(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = markup
	if _, err := b.API.Send(edit); err == nil {
		return
	}
	_, _ = b.API.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	var m interface{}
	if markup != nil {
		m = *markup
	}
	b.send(chatID, text, m)
}

func (b *Bot) answer(cq *tgbotapi.CallbackQuery, text string) {
	if _, err := b.API.Request(tgbotapi.NewCallback(cq.ID, text)); err != nil {
		log.Printf("answer callback: %v", err)
	}
}

// alert pops a modal instead of the silent toast.
func (b *Bot) alert(cq *tgbotapi.CallbackQuery, text string) {
	if _, err := b.API.Request(tgbotapi.NewCallbackWithAlert(cq.ID, text)); err != nil {
		log.Printf("answer callback: %v", err)
	}
}
