package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/controllers"
	"github.com/amaumene/cineslime/internal/models"
)

// Long-poll timeout of getUpdates, in seconds
const pollTimeout = 30

// Sender is the subset of the Bot API used by the bot; *tgbotapi.BotAPI implements it
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error)
}

// Bot routes Telegram updates to the controllers and renders their results
type Bot struct {
	cfg     *config.Config
	api     Sender
	search  *controllers.SearchController
	ingest  *controllers.IngestController
	access  *controllers.AccessController
	library *controllers.LibraryController
	admin   *controllers.AdminController
	logger  *logrus.Logger
}

// NewBotAPI connects to Telegram with the configured token
func NewBotAPI(cfg *config.Config) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	return api, nil
}

// NewBot creates a new bot
func NewBot(
	cfg *config.Config,
	api Sender,
	search *controllers.SearchController,
	ingest *controllers.IngestController,
	access *controllers.AccessController,
	library *controllers.LibraryController,
	admin *controllers.AdminController,
	logger *logrus.Logger,
) *Bot {
	return &Bot{
		cfg:     cfg,
		api:     api,
		search:  search,
		ingest:  ingest,
		access:  access,
		library: library,
		admin:   admin,
		logger:  logger,
	}
}

// Run long-polls for updates until ctx is cancelled. Each update is handled in its own
// goroutine; failed polls are retried with exponential backoff.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting Telegram long polling")

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Second
	policy.MaxInterval = time.Minute
	policy.MaxElapsedTime = 0 // retry until cancelled
	retry := backoff.WithContext(policy, ctx)

	var wg sync.WaitGroup
	defer wg.Wait()

	offset := 0
	for ctx.Err() == nil {
		var updates []tgbotapi.Update
		poll := func() error {
			u := tgbotapi.NewUpdate(offset)
			u.Timeout = pollTimeout
			var err error
			updates, err = b.api.GetUpdates(u)
			return err
		}
		notify := func(err error, next time.Duration) {
			b.logger.WithError(err).WithField("retry_in", next.String()).Warn("Failed to get updates")
		}

		if err := backoff.RetryNotify(poll, retry, notify); err != nil {
			if ctx.Err() != nil {
				break
			}
			return fmt.Errorf("polling stopped: %w", err)
		}
		retry.Reset()

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			wg.Add(1)
			go func(update tgbotapi.Update) {
				defer wg.Done()
				b.HandleUpdate(ctx, update)
			}(update)
		}
	}

	b.logger.Info("Telegram long polling stopped")
	return nil
}

// HandleUpdate dispatches one update. Panics are contained to the update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.WithFields(logrus.Fields{
				"update_id": update.UpdateID,
				"panic":     r,
			}).Error("Update handler panicked")
		}
	}()

	switch {
	case update.ChannelPost != nil:
		b.handleChannelPost(ctx, update.ChannelPost)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// Notify sends a Markdown message to a chat
func (b *Bot) Notify(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to %d: %w", chatID, err)
	}
	return nil
}

// SendRequestDigest sends the administrator the pending requests
func (b *Bot) SendRequestDigest(ctx context.Context, reqs []*models.Request) error {
	if b.cfg.AdminUserID == 0 || len(reqs) == 0 {
		return nil
	}
	if _, err := b.api.Send(renderRequestDigest(reqs).chattable(b.cfg.AdminUserID)); err != nil {
		return fmt.Errorf("failed to send request digest: %w", err)
	}
	return nil
}

func (b *Bot) send(c card, chatID int64) {
	if _, err := b.api.Send(c.chattable(chatID)); err != nil {
		b.logger.WithError(err).WithField("chat_id", chatID).Warn("Failed to send message")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(card{text: text}, chatID)
}

func (b *Bot) typing(chatID int64) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.logger.WithError(err).Debug("Failed to send chat action")
	}
}

// allowed runs the access check and tells the user why they are turned away
func (b *Bot) allowed(chatID int64, from *tgbotapi.User) bool {
	if from == nil {
		return false
	}

	decision := b.access.Check(from.ID, from.UserName, from.FirstName)
	switch decision {
	case controllers.DecisionAllowed:
		return true
	case controllers.DecisionBanned:
		b.reply(chatID, textBanned)
	case controllers.DecisionMaintenance:
		b.reply(chatID, textMaintenance)
	case controllers.DecisionNotWhitelisted:
		b.reply(chatID, textNotWhitelisted)
	case controllers.DecisionError:
		b.reply(chatID, textInternalError)
	}

	b.logger.WithFields(logrus.Fields{
		"user_id":  from.ID,
		"decision": decision,
	}).Debug("Update denied")

	return false
}
