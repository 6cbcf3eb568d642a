package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// messageSender is the part of tgbotapi.BotAPI the notifier needs
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends reminders to a single Telegram chat
type TelegramNotifier struct {
	api    messageSender
	chatID int64
}

// NewTelegramNotifier connects to the Bot API with token
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	return newTelegramNotifier(api, chatID), nil
}

func newTelegramNotifier(api messageSender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{api: api, chatID: chatID}
}

func (n *TelegramNotifier) SendReminder(ctx context.Context, r Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, Message(r))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start learning", "start_learning"),
		),
	)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
