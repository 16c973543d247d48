package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/pkg/logger"
)

// Notifier pushes settlement results to the operators' channel.
type Notifier interface {
	SettlementRecorded(ctx context.Context, outcome models.SessionOutcome, profit, purchase int64) error
}

// NopNotifier is used when no notification channel is configured.
type NopNotifier struct{}

func (NopNotifier) SettlementRecorded(ctx context.Context, outcome models.SessionOutcome, profit, purchase int64) error {
	return nil
}

// TelegramNotifier posts settlement summaries to a Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *logger.Logger
}

func NewTelegramNotifier(token string, chatID int64, log *logger.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	log.Info("Telegram notifier initialized", "bot", bot.Self.UserName)

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		log:    log.Named("notify"),
	}, nil
}

func (n *TelegramNotifier) SettlementRecorded(ctx context.Context, outcome models.SessionOutcome, profit, purchase int64) error {
	sign := "+"
	if profit < 0 {
		sign = ""
	}

	text := fmt.Sprintf(
		"Session settled: %s\nBuy-in: %d (+%d additional)\nFinal stack: %d\nResult: %s%d",
		outcome.PlayerName, outcome.BuyIn, outcome.AdditionalStack, outcome.FinalStack, sign, profit,
	)
	if purchase > 0 {
		text += fmt.Sprintf("\nBilled: %d", purchase)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send settlement notification: %w", err)
	}

	return nil
}
