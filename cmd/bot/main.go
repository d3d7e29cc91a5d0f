// cmd/bot/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"site-manager/internal/bot"
	"site-manager/internal/config"
	"site-manager/internal/password"
	"site-manager/internal/storage/restapi"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if cfg.TelegramBotToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN not set")
		os.Exit(1)
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		slog.Error("Failed to start bot", "error", err)
		os.Exit(1)
	}

	// getUpdates fails while a webhook is set
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		slog.Warn("Failed to delete webhook", "error", err)
	}

	store := restapi.NewStorage(cfg.APIURL, cfg.APITimeout)
	tgBot := bot.New(store, password.NewGenerator(nil), cfg.TelegramAllowedUsers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	slog.Info("Bot started", "bot", api.Self.UserName, "api_url", cfg.APIURL)
	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()
	tgBot.Run(ctx, api, updates)
	slog.Info("Bot stopped")
}
