package bot

import (
	"context"
	"fmt"
	"html"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniyarzr/Flower-bot/internal/catalog"
	"github.com/Daniyarzr/Flower-bot/internal/texts"
	"github.com/Daniyarzr/Flower-bot/internal/users"
)

func (b *Bot) handleStart(ctx context.Context, m *tgbotapi.Message) {
	u, err := b.Users.Upsert(ctx, m.From.ID, m.From.UserName, m.From.FirstName, b.Config.AdminIDs)
	if err != nil {
		log.Printf("upsert user %d: %v", m.From.ID, err)
		b.send(m.Chat.ID, "⚠️ Что-то пошло не так, попробуйте ещё раз.", nil)
		return
	}
	// /start aborts an unfinished draft
	b.Sessions.Clear(m.Chat.ID)
	b.send(m.Chat.ID, b.startText(ctx), kbStart(u.Role == users.RoleAdmin))
}

func (b *Bot) startText(ctx context.Context) string {
	greeting, err := b.Texts.Get(ctx, texts.KeyStart)
	if err != nil {
		log.Printf("load start text: %v", err)
		greeting = texts.Default(texts.KeyStart)
	}
	return fmt.Sprintf("🌸 <b>%s</b>\n\n%s", html.EscapeString(b.Config.ShopName), greeting)
}

func (b *Bot) showStart(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// returning to the menu abandons whatever was in progress
	b.Sessions.Clear(cq.Message.Chat.ID)
	admin, err := b.Roles.IsAdmin(ctx, cq.From.ID)
	if err != nil {
		log.Printf("role check %d: %v", cq.From.ID, err)
	}
	kb := kbStart(admin)
	b.editOrSend(cq.Message.Chat.ID, cq.Message.MessageID, b.startText(ctx), &kb)
	b.answer(cq, "")
}

func (b *Bot) showSupport(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	text, err := b.Texts.Get(ctx, texts.KeySupport)
	if err != nil {
		log.Printf("load support text: %v", err)
		text = texts.Default(texts.KeySupport)
	}
	text = fmt.Sprintf("💬 %s\n\nКонтакт: %s", text, html.EscapeString(b.Config.SupportContact))
	kb := kbBackToStart()
	b.editOrSend(cq.Message.Chat.ID, cq.Message.MessageID, text, &kb)
	b.answer(cq, "")
}

func (b *Bot) showPriceFilters(cq *tgbotapi.CallbackQuery, rawCat string) {
	cat, ok := catalog.ParseCategory(rawCat)
	if !ok {
		b.answer(cq, "")
		return
	}
	kb := kbPriceFilters(cat, b.Config.Currency)
	b.editOrSend(cq.Message.Chat.ID, cq.Message.MessageID, "💰 Выберите ценовой диапазон:", &kb)
	b.answer(cq, "")
}

// openListing handles filter:<category>:<range>.
func (b *Bot) openListing(ctx context.Context, cq *tgbotapi.CallbackQuery, rest string) {
	cat, rangeToken, ok := strings.Cut(rest, ":")
	if !ok {
		b.answer(cq, "")
		return
	}
	b.showProduct(ctx, cq, catalog.Category(cat), rangeToken, 0)
}

// navigateListing handles nav:<category>:<range>:<index>.
func (b *Bot) navigateListing(ctx context.Context, cq *tgbotapi.CallbackQuery, rest string) {
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) != 3 {
		b.answer(cq, "")
		return
	}
	idx, err := strconv.Atoi(parts[2])
	if err != nil {
		b.answer(cq, "")
		return
	}
	b.showProduct(ctx, cq, catalog.Category(parts[0]), parts[1], idx)
}

func (b *Bot) showProduct(ctx context.Context, cq *tgbotapi.CallbackQuery, cat catalog.Category, rangeToken string, idx int) {
	minPrice, maxPrice, err := catalog.ParsePriceRange(rangeToken)
	if err != nil || !cat.Valid() {
		b.answer(cq, "")
		return
	}
	list, err := b.Catalog.Products(ctx, catalog.Filter{Category: cat, MinPrice: minPrice, MaxPrice: maxPrice})
	if err != nil {
		log.Printf("catalog %s %s: %v", cat, rangeToken, err)
		b.alert(cq, "⚠️ Каталог сейчас недоступен, попробуйте позже.")
		return
	}
	chatID, msgID := cq.Message.Chat.ID, cq.Message.MessageID
	if len(list) == 0 {
		kb := kbEmptyListing(cat)
		b.editOrSend(chatID, msgID, "😔 В этой подборке пока пусто.", &kb)
		b.answer(cq, "")
		return
	}
	// the listing may have shrunk since the buttons were drawn
	if idx < 0 {
		idx = 0
	}
	if idx >= len(list) {
		idx = len(list) - 1
	}
	p := list[idx]
	caption := productCard(p, b.Config.Currency)
	markup := kbProductNav(cat, rangeToken, idx, len(list), p.ID)

	if file := b.productPhoto(p); file != nil {
		// a photo cannot be edited into a text message
		_, _ = b.API.Request(tgbotapi.NewDeleteMessage(chatID, msgID))
		photo := tgbotapi.NewPhoto(chatID, file)
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = markup
		if _, err := b.API.Send(photo); err != nil {
			log.Printf("send photo for product %d: %v", p.ID, err)
			b.send(chatID, caption, markup)
		}
	} else {
		b.editOrSend(chatID, msgID, caption, &markup)
	}
	b.answer(cq, "")
}

// productPhoto picks the photo source: a Telegram file id wins over an
// uploaded image or a plain URL. Missing files degrade to a text card.
func (b *Bot) productPhoto(p catalog.Product) tgbotapi.RequestFileData {
	if p.PhotoFileID != "" {
		return tgbotapi.FileID(p.PhotoFileID)
	}
	switch {
	case p.ImageURL == "":
		return nil
	case strings.HasPrefix(p.ImageURL, "http://"), strings.HasPrefix(p.ImageURL, "https://"):
		return tgbotapi.FileURL(p.ImageURL)
	default:
		// back-office uploads live under UploadDir, named by the last
		// path element of the stored URL
		path := filepath.Join(b.Config.UploadDir, filepath.Base(p.ImageURL))
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			return nil
		}
		return tgbotapi.FilePath(path)
	}
}
