package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"

	"booking-service/internal/model"
)

// Notifier receives booking lifecycle events after they have committed.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	BookingCanceled(ctx context.Context, booking *model.Booking) error
}

// TelegramNotifier posts booking events to an admin chat.
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    b,
		chatID: chatID,
	}, nil
}

func (n *TelegramNotifier) BookingCreated(ctx context.Context, booking *model.Booking) error {
	text := fmt.Sprintf("Booking #%d created: slot %d, user %d", booking.ID, booking.SlotID, booking.UserID)
	if booking.Slot != nil {
		text = fmt.Sprintf("Booking #%d created: %s-%s, user %d",
			booking.ID,
			booking.Slot.StartTime.Format("02.01 15:04"),
			booking.Slot.EndTime.Format("15:04"),
			booking.UserID,
		)
	}
	return n.send(ctx, text)
}

func (n *TelegramNotifier) BookingCanceled(ctx context.Context, booking *model.Booking) error {
	return n.send(ctx, fmt.Sprintf("Booking #%d canceled: slot %d freed", booking.ID, booking.SlotID))
}

func (n *TelegramNotifier) send(ctx context.Context, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// NoopNotifier is used when no Telegram credentials are configured.
type NoopNotifier struct{}

func (NoopNotifier) BookingCreated(context.Context, *model.Booking) error  { return nil }
func (NoopNotifier) BookingCanceled(context.Context, *model.Booking) error { return nil }

var (
	_ Notifier = (*TelegramNotifier)(nil)
	_ Notifier = NoopNotifier{}
)
