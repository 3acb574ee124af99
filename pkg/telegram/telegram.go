package telegram

import (
	"context"
	"time"

	"pairs-trading/config"
	"pairs-trading/pkg/logger"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Notifier pushes one-way messages to a fixed chat, throttled by a global
// rate limiter so bursts of run summaries cannot trip the Bot API limits.
type Notifier struct {
	cfg     *config.TelegramConfig
	log     *logger.Logger
	bot     *telebot.Bot
	chat    *telebot.Chat
	limiter *rate.Limiter
}

// NewNotifier builds the bot client. When the integration is disabled in
// config it returns a nil Notifier, which all methods accept.
func NewNotifier(cfg *config.TelegramConfig, log *logger.Logger) (*Notifier, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	// Send-only usage: no poller, the bot never consumes updates.
	bot, err := telebot.NewBot(telebot.Settings{
		Token: cfg.BotToken,
		OnError: func(err error, c telebot.Context) {
			log.Error("Telegram bot error", logger.ErrorField(err))
		},
	})
	if err != nil {
		return nil, err
	}

	perMessage := cfg.MaxMessagePerSecond
	if perMessage <= 0 {
		perMessage = 1
	}

	return &Notifier{
		cfg:     cfg,
		log:     log,
		bot:     bot,
		chat:    &telebot.Chat{ID: cfg.ChatID},
		limiter: rate.NewLimiter(rate.Limit(perMessage), perMessage),
	}, nil
}

// Send delivers a message to the configured chat, waiting on the limiter
// first. A nil Notifier is a no-op.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if n == nil {
		return nil
	}

	waitCtx := ctx
	if n.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, n.cfg.Timeout)
		defer cancel()
	}
	if err := n.limiter.Wait(waitCtx); err != nil {
		return err
	}

	start := time.Now()
	_, err := n.bot.Send(n.chat, text, telebot.ModeMarkdown)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to send telegram message", logger.ErrorField(err))
		return err
	}
	n.log.DebugContext(ctx, "Telegram message sent",
		logger.Field("elapsed", time.Since(start)),
	)
	return nil
}
