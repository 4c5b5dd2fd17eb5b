package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/amaumene/cineslime/internal/controllers"
	"github.com/amaumene/cineslime/internal/models"
)

// Telegram rejects photo captions longer than this
const maxCaptionRunes = 1024

// card is a rendered response: text, optional poster, optional buttons
type card struct {
	text     string
	photo    string
	keyboard [][]tgbotapi.InlineKeyboardButton
}

// chattable turns the card into a photo when it has a poster and the text fits a caption
func (c card) chattable(chatID int64) tgbotapi.Chattable {
	var markup *tgbotapi.InlineKeyboardMarkup
	if len(c.keyboard) > 0 {
		m := tgbotapi.NewInlineKeyboardMarkup(c.keyboard...)
		markup = &m
	}

	if c.photo != "" && len([]rune(c.text)) <= maxCaptionRunes {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(c.photo))
		photo.Caption = c.text
		photo.ParseMode = tgbotapi.ModeMarkdown
		if markup != nil {
			photo.ReplyMarkup = *markup
		}
		return photo
	}

	msg := tgbotapi.NewMessage(chatID, c.text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	return msg
}

func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yearOrUnknown(year string) string {
	return orDefault(year, "????")
}

// renderSearch renders any resolution or details response
func renderSearch(resp *controllers.SearchResponse) card {
	switch resp.Outcome {
	case controllers.OutcomeNotFound:
		return card{text: textNotFound}
	case controllers.OutcomeError:
		if resp.Detailed {
			return card{text: textDetailsFailed}
		}
		return card{text: textSearchFailed}
	case controllers.OutcomeLocalBare:
		return card{
			text:     fmt.Sprintf("📂 *Encontrado:* %s\nUsa el botón para verlo.", esc(resp.Local.Title)),
			keyboard: [][]tgbotapi.InlineKeyboardButton{{tgbotapi.NewInlineKeyboardButtonData("⬇️ Obtener", sendData(resp.Local.ID))}},
		}
	case controllers.OutcomeLocalMinimal:
		return card{
			text:     fmt.Sprintf("✅ *Encontrado*: %s\n\nPulsa el botón para recibir el archivo.", esc(resp.Local.Title)),
			keyboard: [][]tgbotapi.InlineKeyboardButton{{tgbotapi.NewInlineKeyboardButtonData("▶️ Enviar al Chat", sendData(resp.Local.ID))}},
		}
	}

	if resp.Detailed {
		return renderDetails(resp)
	}
	if resp.Outcome == controllers.OutcomeLocal {
		return renderAvailable(resp)
	}
	return renderDiscovery(resp)
}

// renderAvailable is the short card of an archived, enriched file
func renderAvailable(resp *controllers.SearchResponse) card {
	media := resp.Local
	year := ""
	if media.Year > 0 {
		year = fmt.Sprintf(" (%d)", media.Year)
	}

	text := "✅ *DISPONIBLE EN EL CANAL*\n\n" +
		fmt.Sprintf("🎬 *%s*%s\n", esc(media.Title), year) +
		fmt.Sprintf("💾 *Calidad*: %s\n", esc(orDefault(media.Quality, models.DefaultQuality))) +
		fmt.Sprintf("🗣 *Idioma*: %s\n\n", esc(orDefault(media.Language, "Español"))) +
		"¿Deseas recibir el archivo ahora?"

	return card{
		text:     text,
		photo:    resp.Item.PosterURL,
		keyboard: availableButtons(resp),
	}
}

// renderDiscovery is the short card of a catalog item that is not archived
func renderDiscovery(resp *controllers.SearchResponse) card {
	item := resp.Item

	var b strings.Builder
	fmt.Fprintf(&b, "🎬 *%s* (%s)\n", esc(item.Title), yearOrUnknown(item.Year))
	fmt.Fprintf(&b, "⭐ *%.1f/10*\n\n", item.Rating)
	fmt.Fprintf(&b, "📝 %s\n\n", esc(orDefault(item.Overview, "Sin sinopsis.")))
	b.WriteString("⚠️ *No disponible en el canal privado.*")

	if resp.Torrent != nil && len(resp.Torrent.Links) > 0 {
		fmt.Fprintf(&b, "\n\n🏴‍☠️ *Disponible en YTS (Torrent)*:\nCalidad: %s", strings.Join(resp.Torrent.Qualities(), ", "))
	}
	if resp.Advisory {
		b.WriteString(textAdvisory)
	}

	return card{
		text:     b.String(),
		photo:    item.PosterURL,
		keyboard: discoveryButtons(resp, "🧲 Ver Torrent (YTS)"),
	}
}

// renderDetails is the long card behind a details button
func renderDetails(resp *controllers.SearchResponse) card {
	item := resp.Item

	var b strings.Builder
	fmt.Fprintf(&b, "🎬 *%s* (%s)\n", esc(item.Title), orDefault(item.Year, "N/A"))
	fmt.Fprintf(&b, "📝 *Original*: %s\n", esc(orDefault(item.OriginalTitle, item.Title)))
	if item.Rating > 0 {
		fmt.Fprintf(&b, "⭐ *Rating*: %.1f/10\n", item.Rating)
	} else {
		b.WriteString("⭐ *Rating*: N/A\n")
	}
	fmt.Fprintf(&b, "🎭 *Género*: %s\n", esc(orDefault(strings.Join(item.Genres, ", "), "N/A")))
	if item.Kind == models.MediaTypeTV {
		fmt.Fprintf(&b, "⏱ *Duración*: %d Temporadas\n", item.Seasons)
	} else {
		fmt.Fprintf(&b, "⏱ *Duración*: %d min\n", item.Runtime)
	}
	fmt.Fprintf(&b, "🎥 *Dirección/Creador*: %s\n", esc(orDefault(strings.Join(item.Directors, ", "), "N/A")))
	fmt.Fprintf(&b, "👥 *Reparto*: %s\n", esc(strings.Join(item.Cast, ", ")))
	if item.Providers != nil && len(item.Providers.Flatrate) > 0 {
		fmt.Fprintf(&b, "📺 *Dónde ver*: %s\n", esc(strings.Join(item.Providers.Flatrate, ", ")))
	}
	fmt.Fprintf(&b, "\n📖 *Sinopsis*:\n%s", esc(orDefault(item.Overview, "Sin sinopsis disponible.")))

	c := card{photo: item.PosterURL}
	if resp.Outcome == controllers.OutcomeLocal {
		c.keyboard = availableButtons(resp)
	} else {
		if resp.Advisory {
			b.WriteString(textAdvisoryShort)
		}
		c.keyboard = discoveryButtons(resp, "🧲 YTS Torrent")
	}
	if item.TrailerURL != "" {
		c.keyboard = append(c.keyboard, []tgbotapi.InlineKeyboardButton{tgbotapi.NewInlineKeyboardButtonURL("▶️ Tráiler", item.TrailerURL)})
	}
	c.text = b.String()

	return c
}

func availableButtons(resp *controllers.SearchResponse) [][]tgbotapi.InlineKeyboardButton {
	label := "▶️ Enviar al Chat"
	if resp.Detailed {
		label = "✅ DISPONIBLE - ENVIAR AHORA"
	}
	rows := [][]tgbotapi.InlineKeyboardButton{{tgbotapi.NewInlineKeyboardButtonData(label, sendData(resp.Local.ID))}}
	if resp.HasAction(controllers.ActionFavorite) && resp.Item != nil {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("❤️ Favoritos", favoriteData(resp.Item.Kind, resp.Item.TMDBID)),
		})
	}
	return rows
}

func discoveryButtons(resp *controllers.SearchResponse, torrentLabel string) [][]tgbotapi.InlineKeyboardButton {
	item := resp.Item
	var rows [][]tgbotapi.InlineKeyboardButton

	if resp.Torrent != nil && resp.Torrent.URL != "" {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{tgbotapi.NewInlineKeyboardButtonURL(torrentLabel, resp.Torrent.URL)})
	}

	if len(resp.Streams) > 0 {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(resp.Streams))
		for i, stream := range resp.Streams {
			label := "🌐 Ver en " + stream.Name
			if i == 0 {
				label = "🎬 Ver en " + stream.Name
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonURL(label, stream.URL))
		}
		rows = append(rows, row)
	}

	var actions []tgbotapi.InlineKeyboardButton
	if resp.HasAction(controllers.ActionRequest) {
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("🔔 Solicitar", requestData(item.Kind, item.TMDBID)))
	}
	if resp.HasAction(controllers.ActionFavorite) {
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("❤️ Favoritos", favoriteData(item.Kind, item.TMDBID)))
	}
	if len(actions) > 0 {
		rows = append(rows, actions)
	}

	return rows
}

// renderTrending lists trending movies with a details button each
func renderTrending(items []*controllers.Item) card {
	if len(items) == 0 {
		return card{text: textInternalError}
	}

	var b strings.Builder
	b.WriteString("🔥 *Películas en Tendencia esta Semana:*\n\n")
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items))
	for i, item := range items {
		rating := "N/A"
		if item.Rating > 0 {
			rating = fmt.Sprintf("%.1f", item.Rating)
		}
		fmt.Fprintf(&b, "%d. *%s* (⭐ %s)\n", i+1, esc(item.Title), rating)
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🎬 Ver "+item.Title, detailsData(item.Kind, item.TMDBID)),
		})
	}

	return card{text: b.String(), keyboard: rows}
}

// renderFavorites lists bookmarks with a details button each
func renderFavorites(favs []*models.Favorite) card {
	if len(favs) == 0 {
		return card{text: textNoFavorites}
	}

	var b strings.Builder
	b.WriteString("❤️ *Tus Favoritos:*\n\n")
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(favs))
	for _, f := range favs {
		fmt.Fprintf(&b, "• %s\n", esc(f.Title))
		kind := f.MediaType
		if kind == "" {
			kind = models.MediaTypeMovie
		}
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🎬 Ver "+f.Title, detailsData(kind, f.TMDBID)),
		})
	}

	return card{text: b.String(), keyboard: rows}
}

// renderRandom offers the details of a random archived file, or the file itself when unmatched
func renderRandom(media *models.Media) card {
	if media == nil {
		return card{text: textEmptyCollection}
	}

	button := tgbotapi.NewInlineKeyboardButtonData("🎬 Ver Sorpresa", sendData(media.ID))
	if media.HasTMDBID() {
		kind := media.MediaType
		if kind == "" {
			kind = models.MediaTypeMovie
		}
		button = tgbotapi.NewInlineKeyboardButtonData("🎬 Ver Sorpresa", detailsData(kind, *media.TMDBID))
	}

	return card{text: textRandomPick, keyboard: [][]tgbotapi.InlineKeyboardButton{{button}}}
}

// renderSummary formats /stats
func renderSummary(s *controllers.Summary) string {
	maintenance := "🟢 Desactivado"
	if s.Maintenance {
		maintenance = "🔴 Activado"
	}
	return "📊 *Estadísticas de Cineslime*\n\n" +
		fmt.Sprintf("🎥 Películas/Series: *%d*\n", s.Medias) +
		fmt.Sprintf("   🎬 Películas: %d\n", s.MediasByType[models.MediaTypeMovie]) +
		fmt.Sprintf("   📺 Series: %d\n", s.MediasByType[models.MediaTypeTV]) +
		fmt.Sprintf("👥 Usuarios: *%d*\n", s.Users) +
		fmt.Sprintf("🔔 Solicitudes pendientes: *%d*\n", s.PendingRequests) +
		fmt.Sprintf("🛠️ Mantenimiento: %s", maintenance)
}

// renderRequestDigest lists pending requests with a completion button each
func renderRequestDigest(reqs []*models.Request) card {
	if len(reqs) == 0 {
		return card{text: textNoPendingRequests}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔔 *Solicitudes pendientes (%d):*\n\n", len(reqs))
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reqs))
	for _, r := range reqs {
		fmt.Fprintf(&b, "#%d %s (usuario %d)\n", r.ID, esc(r.Title), r.UserID)
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✅ #%d %s", r.ID, r.Title), doneData(r.ID)),
		})
	}

	return card{text: b.String(), keyboard: rows}
}
