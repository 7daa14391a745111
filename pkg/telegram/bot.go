package telegram

import (
	"fmt"
	"math"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const sendRetries = 3

type Bot struct {
	api *tgbotapi.BotAPI
}

func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Bot{api: api}, nil
}

// SendMessage отправляет сообщение клиенту с повторами и экспоненциальной паузой
func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)

	var err error
	for i := 0; i < sendRetries; i++ {
		if i != 0 {
			time.Sleep(time.Duration(math.Pow(2, float64(i))) * time.Second)
		}

		_, err = b.api.Send(msg)
		if err == nil {
			return nil
		}
		logrus.Warnf("Telegram send to %d failed (attempt %d): %v", chatID, i+1, err)
	}

	return fmt.Errorf("telegram send permanently failed: %w", err)
}
