package notify

import (
	"bytes"
	"context"
	"image"
	"image/png"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Telegram delivers notifications to a bot chat, with the card sent as
// a photo when one is available.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

func NewTelegram(log *zap.Logger, token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "create telegram bot")
	}
	return &Telegram{bot: bot, chatID: chatID, log: log}, nil
}

func (t *Telegram) Send(ctx context.Context, message string, card image.Image) error {
	if card != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, card); err != nil {
			t.log.Warn("failed to encode card for telegram, sending text only", zap.Error(err))
		} else {
			photo := tgbotapi.NewPhoto(t.chatID, tgbotapi.FileBytes{Name: "Card.png", Bytes: buf.Bytes()})
			photo.Caption = message
			if _, err := t.bot.Send(photo); err != nil {
				return &NotificationError{Target: "telegram", Err: err}
			}
			return nil
		}
	}

	msg := tgbotapi.NewMessage(t.chatID, message)
	if _, err := t.bot.Send(msg); err != nil {
		return &NotificationError{Target: "telegram", Err: err}
	}
	return nil
}
