// Package notify pushes high-confidence signals to a Telegram chat.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"zerohero/models"
)

// Telegram sends candidate alerts to a single chat. Sends are retried with
// exponential backoff; the Telegram API is flakier than the scan path and
// an alert is worth a few attempts.
type Telegram struct {
	bot           *tgbotapi.BotAPI
	chatID        int64
	minConfidence float64
	logger        zerolog.Logger
}

// New creates a Telegram notifier.
func New(token string, chatID int64, minConfidence float64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}

	return &Telegram{
		bot:           bot,
		chatID:        chatID,
		minConfidence: minConfidence,
		logger:        log.With().Str("component", "notify").Logger(),
	}, nil
}

// AlertCandidates sends one message listing every candidate at or above the
// confidence threshold. No message is sent when none qualify.
func (t *Telegram) AlertCandidates(index string, candidates []models.Candidate) error {
	var lines []string
	for _, c := range candidates {
		if c.Confidence < t.minConfidence {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %.0f %s @ %.2f  OI %.0f  Vol %.0f  conf %.1f%%",
			index, c.Strike, c.OptionType, c.LastPrice, c.OpenInterest, c.Volume, c.Confidence))
	}
	if len(lines) == 0 {
		return nil
	}

	text := fmt.Sprintf("Zero Hero signals (%s):\n%s", index, strings.Join(lines, "\n"))
	msg := tgbotapi.NewMessage(t.chatID, text)

	operation := func() error {
		_, err := t.bot.Send(msg)
		return err
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 20 * time.Second

	if err := backoff.Retry(operation, backoffStrategy); err != nil {
		return fmt.Errorf("sending alert: %w", err)
	}

	t.logger.Info().Str("index", index).Int("signals", len(lines)).Msg("Alert sent")
	return nil
}
