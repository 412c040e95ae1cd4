package worker

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fintrack/internal/log"
	"fintrack/internal/notify"
)

// LogDeliverer writes due notifications to the log.
type LogDeliverer struct {
	logger *log.Logger
}

func NewLogDeliverer(logger *log.Logger) *LogDeliverer {
	return &LogDeliverer{logger: logger.WithComponent(log.ComponentWorker)}
}

func (d *LogDeliverer) Deliver(ctx context.Context, n notify.Notification) error {
	d.logger.InfoContext(ctx, "Reminder due",
		log.FieldReminderID, n.ID,
		"title", n.Title,
		"body", n.Body,
		log.FieldTriggerAt, n.TriggerAt)
	return nil
}

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramDeliverer sends due notifications to one Telegram chat.
type TelegramDeliverer struct {
	bot    telegramSender
	chatID int64
}

// NewTelegramDeliverer authenticates the bot token against the Telegram API.
func NewTelegramDeliverer(token string, chatID int64) (*TelegramDeliverer, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramDeliverer{bot: bot, chatID: chatID}, nil
}

func (d *TelegramDeliverer) Deliver(_ context.Context, n notify.Notification) error {
	msg := tgbotapi.NewMessage(d.chatID, FormatMessage(n))
	if _, err := d.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FormatMessage renders a notification as plain chat text.
func FormatMessage(n notify.Notification) string {
	var b strings.Builder
	b.WriteString("⏰ ")
	b.WriteString(n.Title)
	if n.Body != "" {
		b.WriteString("\n")
		b.WriteString(n.Body)
	}
	if !n.TriggerAt.IsZero() {
		b.WriteString("\nDue: ")
		b.WriteString(n.TriggerAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}
