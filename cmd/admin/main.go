package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/Daniyarzr/Flower-bot/internal/bot"
	"github.com/Daniyarzr/Flower-bot/internal/catalog"
	"github.com/Daniyarzr/Flower-bot/internal/config"
	"github.com/Daniyarzr/Flower-bot/internal/httpx"
	"github.com/Daniyarzr/Flower-bot/internal/orders"
	"github.com/Daniyarzr/Flower-bot/internal/postgres"
	"github.com/Daniyarzr/Flower-bot/internal/redisx"
	"github.com/Daniyarzr/Flower-bot/internal/texts"
	"github.com/Daniyarzr/Flower-bot/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}
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

	// Telegram, for the broadcast form
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	router := httpx.NewRouter()
	h := &httpx.Handler{
		Config:   cfg,
		Products: &catalog.Repo{DB: db},
		Orders:   &orders.Repo{DB: db},
		Users:    &users.Repo{DB: db},
		Texts:    &texts.Repo{DB: db},
		Marker:   &redisx.VersionMarker{RDB: rdb},
		Sessions: &httpx.SessionManager{RDB: rdb},
		Bot:      bot.Messenger{API: api},
		Validate: validator.New(),
	}
	h.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("admin panel listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
}
