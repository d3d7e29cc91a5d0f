// internal/bot/bot.go
package bot

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"site-manager/internal/password"
	"site-manager/internal/storage"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
)

type Store interface {
	storage.CategoryStorage
	storage.SiteStorage
}

// Sender is the part of *tgbotapi.BotAPI the polling loop needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers chat commands against the same REST API the web front end uses.
type Bot struct {
	store     Store
	passwords *password.Generator
	allowed   map[int64]bool
	now       func() time.Time
}

// New returns a bot that serves only the given Telegram user ids.
func New(store Store, passwords *password.Generator, allowedUsers []int64) *Bot {
	allowed := make(map[int64]bool, len(allowedUsers))
	for _, id := range allowedUsers {
		allowed[id] = true
	}
	if len(allowed) == 0 {
		slog.Warn("No Telegram users allowed; every message will be rejected")
	}
	return &Bot{
		store:     store,
		passwords: passwords,
		allowed:   allowed,
		now:       time.Now,
	}
}

// HandleUpdate builds the reply for one update; ok is false when there is
// nothing to answer.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) (msg tgbotapi.MessageConfig, ok bool) {
	m := update.Message
	if m == nil || m.From == nil {
		return msg, false
	}

	userID := m.From.ID
	rawText := m.Text
	text := fixEncoding(rawText)
	if text != rawText {
		slog.Debug("Fixed message encoding", "user_id", userID)
	}

	var reply string
	if !b.allowed[userID] {
		slog.Warn("Rejected Telegram user", "user_id", userID, "username", m.From.UserName)
		reply = msgUnauthorized
	} else {
		reply = b.reply(ctx, text)
	}
	return tgbotapi.NewMessage(m.Chat.ID, reply), true
}

// Run answers updates until ctx is cancelled or the channel is closed.
func (b *Bot) Run(ctx context.Context, api Sender, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, open := <-updates:
			if !open {
				return
			}
			msg, ok := b.HandleUpdate(ctx, update)
			if !ok {
				continue
			}
			if _, err := api.Send(msg); err != nil {
				slog.Error("Failed to send Telegram reply", "error", err, "chat_id", msg.ChatID)
			}
		}
	}
}

// WebhookRoute is the gin pattern for WebhookHandler.
const WebhookRoute = "/telegram/:token"

// WebhookPath is the path Telegram is told to post to. The bot token in it
// is the only thing that tells Telegram apart from anyone else.
func WebhookPath(token string) string {
	return "/telegram/" + token
}

// WebhookHandler receives updates pushed by Telegram and answers in the
// response body, so no outgoing request is needed. Requests whose :token
// does not match token are refused.
func (b *Bot) WebhookHandler(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.Param("token")
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			slog.Warn("Rejected webhook call with wrong path", "client_ip", c.ClientIP())
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			slog.Warn("Invalid Telegram update", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}

		msg, ok := b.HandleUpdate(c.Request.Context(), update)
		if !ok {
			c.Status(http.StatusOK)
			return
		}
		if err := tgbotapi.WriteToHTTPResponse(c.Writer, msg); err != nil {
			slog.Error("Failed to write Telegram reply", "error", err, "update_id", update.UpdateID)
		}
	}
}
