package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/config"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
)

// TelegramNotifier mirrors the run summary into a Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

var _ ports.Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier authenticates the bot token.
func NewTelegramNotifier(cfg config.TelegramConfig) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: cfg.ChatID}, nil
}

// SendRunSummary posts the report as one plain-text message.
func (n *TelegramNotifier) SendRunSummary(_ context.Context, subject, body string) error {
	msg := tgbotapi.NewMessage(n.chatID, subject+"\n\n"+body)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram summary: %w", err)
	}
	return nil
}

// MultiNotifier fans a report out to every configured channel; the first
// failure is returned after all channels are attempted.
type MultiNotifier struct {
	channels []ports.Notifier
}

var _ ports.Notifier = (*MultiNotifier)(nil)

// NewMultiNotifier combines the given channels.
func NewMultiNotifier(channels ...ports.Notifier) *MultiNotifier {
	return &MultiNotifier{channels: channels}
}

// SendRunSummary delivers to all channels.
func (n *MultiNotifier) SendRunSummary(ctx context.Context, subject, body string) error {
	var firstErr error
	for _, channel := range n.channels {
		if err := channel.SendRunSummary(ctx, subject, body); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
