package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/cineslime/internal/controllers"
	"github.com/amaumene/cineslime/internal/models"
)

// fileOf returns the Telegram file reference of a video or document message
func fileOf(msg *tgbotapi.Message) (string, bool) {
	switch {
	case msg == nil:
		return "", false
	case msg.Video != nil:
		return msg.Video.FileID, true
	case msg.Document != nil:
		return msg.Document.FileID, true
	default:
		return "", false
	}
}

// handleChannelPost archives files posted to the private channel
func (b *Bot) handleChannelPost(ctx context.Context, msg *tgbotapi.Message) {
	fileID, ok := fileOf(msg)
	if !ok {
		return
	}

	result := b.ingest.Ingest(ctx, msg.Caption, fileID)
	b.logger.WithFields(logrus.Fields{
		"chat_id": msg.Chat.ID,
		"outcome": result.Outcome,
		"title":   result.Title,
	}).Info("Channel post processed")

	// Confirmations go to the admin rather than into the channel
	if b.cfg.AdminUserID != 0 && result.Outcome != controllers.IngestUnparsed {
		b.reply(b.cfg.AdminUserID, ingestText(result))
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}

	if fileID, ok := fileOf(msg); ok && !msg.IsCommand() {
		if b.access.IsAdmin(msg.From.ID) && msg.Chat.IsPrivate() && b.allowed(msg.Chat.ID, msg.From) {
			result := b.ingest.Ingest(ctx, msg.Caption, fileID)
			if result.Outcome == controllers.IngestUnparsed {
				b.reply(msg.Chat.ID, textIngestUnparsed)
				return
			}
			b.reply(msg.Chat.ID, ingestText(result))
		}
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if strings.TrimSpace(msg.Text) == "" || !msg.Chat.IsPrivate() {
		return
	}
	if !b.allowed(msg.Chat.ID, msg.From) {
		return
	}

	b.resolve(ctx, msg.Chat.ID, msg.Text)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	if !b.allowed(msg.Chat.ID, msg.From) {
		return
	}

	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())
	isAdmin := b.access.IsAdmin(msg.From.ID)

	b.logger.WithFields(logrus.Fields{
		"command": msg.Command(),
		"user_id": msg.From.ID,
	}).Debug("Command received")

	switch msg.Command() {
	case "start":
		b.start(chatID, msg.From)
	case "help":
		b.reply(chatID, textHelp)
	case "peli", "serie", "ver":
		if args == "" {
			b.reply(chatID, fmt.Sprintf("⚠️ Uso: /%s <título>", msg.Command()))
			return
		}
		b.resolve(ctx, chatID, args)
	case "populares":
		b.typing(chatID)
		b.send(renderTrending(b.search.Trending(ctx)), chatID)
	case "aleatorio":
		b.typing(chatID)
		media, err := b.search.Random(ctx)
		if err != nil {
			b.logger.WithError(err).Error("Failed to pick random media")
			b.reply(chatID, textInternalError)
			return
		}
		b.send(renderRandom(media), chatID)
	case "favoritos":
		favs, err := b.library.Favorites(ctx, msg.From.ID)
		if err != nil {
			b.logger.WithError(err).Error("Failed to list favorites")
			b.reply(chatID, textInternalError)
			return
		}
		b.send(renderFavorites(favs), chatID)
	case "sinanuncios", "adblock":
		b.reply(chatID, textAdBlock)
	case "stats":
		if !isAdmin {
			b.reply(chatID, textAdminOnly)
			return
		}
		b.stats(ctx, chatID)
	default:
		if isAdmin {
			b.handleAdminCommand(ctx, msg, args)
		}
	}
}

// handleAdminCommand runs admin-only commands; others ignore them silently
func (b *Bot) handleAdminCommand(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "admin":
		b.reply(chatID, textAdminPanel)
	case "info":
		b.info(ctx, msg, args)
	case "ban", "unban", "allow":
		target, err := strconv.ParseInt(firstField(args), 10, 64)
		if err != nil {
			b.reply(chatID, fmt.Sprintf("⚠️ Uso: /%s <user_id>", msg.Command()))
			return
		}
		b.moderate(ctx, chatID, msg.Command(), target)
	case "mantenimiento":
		enabled, err := b.admin.ToggleMaintenance(ctx)
		if err != nil {
			b.logger.WithError(err).Error("Failed to toggle maintenance")
			b.reply(chatID, textInternalError)
			return
		}
		status := "🟢 DESACTIVADO (Bot abierto al público)"
		if enabled {
			status = "🔴 ACTIVADO (Nadie puede usar el bot)"
		}
		b.reply(chatID, "🛠️ *Modo Mantenimiento* ha sido "+status)
	case "broadcast":
		if args == "" {
			b.reply(chatID, "⚠️ Uso: /broadcast <mensaje>")
			return
		}
		b.broadcast(ctx, chatID, args)
	case "registrar":
		b.register(ctx, msg, args)
	}
}

func (b *Bot) start(chatID int64, from *tgbotapi.User) {
	name := orDefault(from.FirstName, "cineasta")
	text := fmt.Sprintf("🎬 *Bienvenido a Cineslime Bot, %s*\n\n", esc(name)) +
		"Escribe el nombre de una *película* o *serie* y te mostraré:\n" +
		"• Información completa\n" +
		"• Dónde verla legalmente\n" +
		"• Disponibilidad en nuestra colección\n\n" +
		"📚 Usa /help para ver todos los comandos."

	c := card{text: text}
	if b.cfg.ChannelInviteURL != "" {
		c.text += "\n\n👇 *Únete a nuestro canal privado aquí:*"
		c.keyboard = [][]tgbotapi.InlineKeyboardButton{{tgbotapi.NewInlineKeyboardButtonURL("🎥 Entrar al canal", b.cfg.ChannelInviteURL)}}
	}
	b.send(c, chatID)
}

func (b *Bot) resolve(ctx context.Context, chatID int64, query string) {
	b.typing(chatID)
	b.send(renderSearch(b.search.Resolve(ctx, query)), chatID)
}

func (b *Bot) stats(ctx context.Context, chatID int64) {
	b.typing(chatID)
	summary, err := b.admin.Summary(ctx)
	if err != nil {
		b.logger.WithError(err).Error("Failed to collect stats")
		b.reply(chatID, "❌ Error obteniendo estadísticas.")
		return
	}
	b.reply(chatID, renderSummary(summary))
}

func (b *Bot) info(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	var target int64
	var language string
	if reply := msg.ReplyToMessage; reply != nil && reply.From != nil {
		target = reply.From.ID
		language = reply.From.LanguageCode
	} else if id, err := strconv.ParseInt(args, 10, 64); err == nil {
		target = id
	}
	if target == 0 {
		b.reply(chatID, textInfoUsage)
		return
	}

	var r strings.Builder
	r.WriteString("🕵️‍♂️ *Informe de Usuario*\n\n")
	fmt.Fprintf(&r, "🆔 *ID*: `%d`\n", target)

	chat, err := b.api.GetChat(tgbotapi.ChatInfoConfig{ChatConfig: tgbotapi.ChatConfig{ChatID: target}})
	if err != nil {
		b.logger.WithError(err).WithField("user_id", target).Debug("Failed to get chat info")
	} else {
		fmt.Fprintf(&r, "👤 *Nombre*: %s\n", esc(strings.TrimSpace(chat.FirstName+" "+chat.LastName)))
		fmt.Fprintf(&r, "📎 *Username*: @%s\n", esc(orDefault(chat.UserName, "N/A")))
		fmt.Fprintf(&r, "📝 *Bio*: %s\n", esc(orDefault(chat.Bio, "Sin biografía")))
	}
	fmt.Fprintf(&r, "🌐 *Idioma*: %s\n\n", orDefault(language, "Desconocido"))

	user, err := b.admin.User(ctx, target)
	switch {
	case err == nil:
		r.WriteString("📂 *Base de Datos Cineslime:*\n")
		fmt.Fprintf(&r, "📅 *Registrado*: %s\n", user.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintf(&r, "🔑 *Rol*: %s\n", user.Role)
		fmt.Fprintf(&r, "✅ *Autorizado*: %t\n", user.IsWhitelisted)
		fmt.Fprintf(&r, "🔨 *Baneado*: %t", user.IsBanned)
	case errors.Is(err, models.ErrNotFound):
		r.WriteString("⚠️ *No registrado en el Bot*.")
	default:
		b.logger.WithError(err).Error("Failed to look up user")
		r.WriteString("❌ Error consultando la base de datos.")
	}

	b.reply(chatID, r.String())
}

func (b *Bot) moderate(ctx context.Context, chatID int64, command string, target int64) {
	var (
		err    error
		done   string
		notify string
	)
	switch command {
	case "ban":
		err = b.admin.Ban(ctx, target)
		done = fmt.Sprintf("🔨 Usuario %d ha sido BANEADO.", target)
		notify = textBanned
	case "unban":
		err = b.admin.Unban(ctx, target)
		done = fmt.Sprintf("😇 Usuario %d PERDONADO.", target)
		notify = textUnbanned
	case "allow":
		err = b.admin.Allow(ctx, target)
		done = fmt.Sprintf("✅ Usuario %d autorizado.", target)
	}

	if errors.Is(err, models.ErrNotFound) {
		b.reply(chatID, fmt.Sprintf("⚠️ El usuario %d nunca ha usado el bot.", target))
		return
	}
	if err != nil {
		b.logger.WithError(err).WithField("user_id", target).Error("Moderation failed")
		b.reply(chatID, textInternalError)
		return
	}

	b.reply(chatID, done)
	if notify != "" {
		if err := b.Notify(ctx, target, notify); err != nil {
			b.logger.WithError(err).WithField("user_id", target).Debug("Failed to notify moderated user")
		}
	}
}

func (b *Bot) broadcast(ctx context.Context, chatID int64, text string) {
	b.reply(chatID, textBroadcastStart)

	result, err := b.admin.Broadcast(ctx, "📢 *Anuncio Oficial:*\n\n"+text, b)
	if err != nil {
		b.logger.WithError(err).Error("Broadcast failed")
	}

	b.reply(chatID, fmt.Sprintf("✅ Transmisión finalizada. Enviado a %d usuarios (%d fallidos).", result.Sent, result.Failed))
}

// register force-archives the replied-to file under "Title | Year"
func (b *Bot) register(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	fileID, ok := fileOf(msg.ReplyToMessage)
	if !ok {
		b.reply(chatID, textRegisterNeedsFile)
		return
	}

	title, rawYear, _ := strings.Cut(args, "|")
	title = strings.TrimSpace(title)
	year, err := strconv.Atoi(strings.TrimSpace(rawYear))
	if title == "" || err != nil {
		b.reply(chatID, textRegisterUsage)
		return
	}

	result := b.ingest.Register(ctx, title, year, fileID, msg.ReplyToMessage.Caption)
	switch result.Outcome {
	case controllers.IngestCreated:
		linked := "No vinculado"
		if result.Media.HasTMDBID() {
			linked = strconv.FormatInt(*result.Media.TMDBID, 10)
		}
		b.reply(chatID, fmt.Sprintf("✅ Contenido registrado: *%s* (%d) [TMDB: %s]", esc(title), year, linked))
	case controllers.IngestUnparsed:
		b.reply(chatID, textRegisterUsage)
	default:
		b.reply(chatID, ingestText(result))
	}
}

func ingestText(result controllers.IngestResult) string {
	switch result.Outcome {
	case controllers.IngestCreated:
		return fmt.Sprintf("✅ Guardado en Base de Datos:\n%s (%d)", esc(result.Title), result.Year)
	case controllers.IngestDuplicate:
		return fmt.Sprintf("⚠️ Ya existe en la base de datos: %s", esc(result.Title))
	case controllers.IngestUnparsed:
		return textIngestUnparsed
	default:
		return textInternalError
	}
}

func firstField(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
