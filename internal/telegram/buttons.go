package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/cineslime/internal/controllers"
	"github.com/amaumene/cineslime/internal/models"
)

func (b *Bot) answer(query *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, text)); err != nil {
		b.logger.WithError(err).Debug("Failed to answer callback")
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.Message.Chat == nil {
		b.answer(query, "")
		return
	}
	chatID := query.Message.Chat.ID

	if !b.allowed(chatID, query.From) {
		b.answer(query, "")
		return
	}

	cb, ok := parseCallback(query.Data)
	if !ok {
		b.logger.WithField("data", query.Data).Warn("Unknown callback data")
		b.answer(query, "")
		return
	}

	b.logger.WithFields(logrus.Fields{
		"action":  cb.action,
		"id":      cb.id,
		"user_id": query.From.ID,
	}).Debug("Callback received")

	switch cb.action {
	case callbackDetails:
		b.answer(query, "")
		b.typing(chatID)
		b.send(renderSearch(b.search.Details(ctx, cb.kind, cb.id)), chatID)
	case callbackSend:
		b.answer(query, "")
		b.sendFile(ctx, chatID, uint(cb.id))
	case callbackRequest:
		b.requestUpload(ctx, query, cb)
	case callbackFavorite:
		b.addFavorite(ctx, query, cb)
	case callbackDone:
		if !b.access.IsAdmin(query.From.ID) {
			b.answer(query, textAdminOnly)
			return
		}
		b.answer(query, "")
		b.completeRequest(ctx, query, uint(cb.id))
	}
}

func (b *Bot) sendFile(ctx context.Context, chatID int64, mediaID uint) {
	media, err := b.search.Media(ctx, mediaID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			b.logger.WithError(err).WithField("media_id", mediaID).Error("Failed to load media")
		}
		b.reply(chatID, textSendFailed)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(media.FileID))
	doc.Caption = media.Caption
	if _, err := b.api.Send(doc); err != nil {
		b.logger.WithError(err).WithField("media_id", mediaID).Error("Failed to send file")
		b.reply(chatID, textSendFailed)
	}
}

func (b *Bot) requestUpload(ctx context.Context, query *tgbotapi.CallbackQuery, cb callback) {
	req, err := b.library.RequestUpload(ctx, query.From.ID, cb.kind, cb.id)
	if errors.Is(err, controllers.ErrAlreadyRequested) {
		b.answer(query, textAlreadyRequested)
		return
	}
	if err != nil {
		b.logger.WithError(err).Error("Failed to record request")
		b.answer(query, textInternalError)
		return
	}

	b.answer(query, "")
	b.reply(query.Message.Chat.ID, textRequested)

	if b.cfg.AdminUserID == 0 {
		return
	}
	note := card{
		text: fmt.Sprintf("🔔 *Nueva Petición*\nUsuario: %s (`%d`)\nTítulo: %s",
			esc(orDefault(query.From.FirstName, query.From.UserName)), query.From.ID, esc(req.Title)),
		keyboard: [][]tgbotapi.InlineKeyboardButton{{tgbotapi.NewInlineKeyboardButtonData("✅ Marcar como subida", doneData(req.ID))}},
	}
	b.send(note, b.cfg.AdminUserID)
}

func (b *Bot) addFavorite(ctx context.Context, query *tgbotapi.CallbackQuery, cb callback) {
	_, err := b.library.AddFavorite(ctx, query.From.ID, cb.kind, cb.id)
	switch {
	case errors.Is(err, controllers.ErrAlreadyFavorite):
		b.answer(query, textAlreadyFavorite)
	case err != nil:
		b.logger.WithError(err).Error("Failed to add favorite")
		b.answer(query, textInternalError)
	default:
		b.answer(query, textFavoriteAdded)
	}
}

func (b *Bot) completeRequest(ctx context.Context, query *tgbotapi.CallbackQuery, requestID uint) {
	chatID := query.Message.Chat.ID

	req, err := b.admin.CompleteRequest(ctx, requestID)
	if err != nil {
		b.logger.WithError(err).WithField("request_id", requestID).Error("Failed to complete request")
		b.reply(chatID, textInternalError)
		return
	}

	// A single-request notice is done with; a digest keeps its other buttons
	if markup := query.Message.ReplyMarkup; markup == nil || len(markup.InlineKeyboard) <= 1 {
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, query.Message.MessageID)); err != nil {
			b.logger.WithError(err).Debug("Failed to delete request message")
		}
	}
	b.reply(chatID, fmt.Sprintf("✅ Solicitud #%d marcada como completada.", req.ID))

	text := fmt.Sprintf("🥳 *¡Buenas noticias!*\n\nLo que pediste (*%s*) ya ha sido subido al bot.\n\nUsa /ver %s para verlo.",
		esc(req.Title), esc(req.Title))
	if err := b.Notify(ctx, req.UserID, text); err != nil {
		b.logger.WithError(err).WithField("user_id", req.UserID).Warn("Failed to notify requester")
	}
}
