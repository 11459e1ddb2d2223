// Package telegram adapts the Telegram Bot API to the syncer's Notifier
// contract. Notifications are the system's only user-facing surface.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends rendered transaction messages to a single chat.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier authenticates the bot token and binds the destination chat.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("NewNotifier: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID}, nil
}

// Send delivers one message. The context is accepted for contract symmetry;
// the underlying client does not support per-request cancellation.
func (n *Notifier) Send(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("Send: %w", err)
	}
	return nil
}
