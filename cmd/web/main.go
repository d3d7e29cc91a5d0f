// cmd/web/main.go
package main

import (
	"log/slog"
	"os"
	"site-manager/internal/bot"
	"site-manager/internal/config"
	"site-manager/internal/confirm"
	"site-manager/internal/handler"
	"site-manager/internal/middleware"
	"site-manager/internal/password"
	"site-manager/internal/storage/restapi"
	"strings"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	store := restapi.NewStorage(cfg.APIURL, cfg.APITimeout)
	passwords := password.NewGenerator(nil)

	tokenService := confirm.NewTokenService(cfg)
	confirmMiddleware := middleware.NewConfirmMiddleware(tokenService)
	siteHandler := handler.NewSiteManagerHandler(store, tokenService, passwords)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	handler.SetupRoutes(router, siteHandler, confirmMiddleware)

	if cfg.TelegramBotToken != "" && cfg.PublicURL != "" {
		if err := registerWebhook(router, cfg, store, passwords); err != nil {
			slog.Error("Telegram webhook disabled", "error", err)
		}
	}

	slog.Info("Server starting", "addr", cfg.ServerPort, "api_url", cfg.APIURL)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func registerWebhook(router *gin.Engine, cfg config.Config, store bot.Store, passwords *password.Generator) error {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return err
	}

	webhook, err := tgbotapi.NewWebhook(strings.TrimSuffix(cfg.PublicURL, "/") + bot.WebhookPath(cfg.TelegramBotToken))
	if err != nil {
		return err
	}
	if _, err := api.Request(webhook); err != nil {
		return err
	}

	tgBot := bot.New(store, passwords, cfg.TelegramAllowedUsers)
	router.POST(bot.WebhookRoute, tgBot.WebhookHandler(cfg.TelegramBotToken))
	slog.Info("Telegram webhook registered", "bot", api.Self.UserName)
	return nil
}
