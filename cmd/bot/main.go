package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/Daniyarzr/Flower-bot/internal/bot"
	"github.com/Daniyarzr/Flower-bot/internal/catalog"
	"github.com/Daniyarzr/Flower-bot/internal/config"
	"github.com/Daniyarzr/Flower-bot/internal/notify"
	"github.com/Daniyarzr/Flower-bot/internal/orders"
	"github.com/Daniyarzr/Flower-bot/internal/postgres"
	"github.com/Daniyarzr/Flower-bot/internal/redisx"
	"github.com/Daniyarzr/Flower-bot/internal/texts"
	"github.com/Daniyarzr/Flower-bot/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Telegram
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	log.Printf("authorized as @%s", api.Self.UserName)

	productRepo := &catalog.Repo{DB: db}
	userRepo := &users.Repo{DB: db}

	b := &bot.Bot{
		API:      api,
		Config:   cfg,
		Sessions: bot.NewSessions(),
		Catalog:  catalog.NewCache(productRepo, &redisx.VersionMarker{RDB: rdb}, catalog.DefaultTTL),
		Products: productRepo,
		Orders:   &orders.Repo{DB: db},
		Users:    userRepo,
		Roles:    users.NewRoleCache(userRepo, users.DefaultRoleTTL),
		Texts:    &texts.Repo{DB: db},
		Notify:   notify.New(bot.Messenger{API: api}, cfg.AdminIDs),
	}

	// graceful shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("shutting down...")
		cancel()
	}()

	log.Println("bot started")
	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot: %v", err)
	}
}
