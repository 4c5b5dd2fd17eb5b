package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/cineslime/internal/controllers"
	"github.com/amaumene/cineslime/internal/models"
	"github.com/amaumene/cineslime/internal/services/tmdb"
)

func buttonData(c card) []string {
	var data []string
	for _, row := range c.keyboard {
		for _, button := range row {
			if button.CallbackData != nil {
				data = append(data, *button.CallbackData)
			}
			if button.URL != nil {
				data = append(data, *button.URL)
			}
		}
	}
	return data
}

func TestRenderDiscovery(t *testing.T) {
	resp := &controllers.SearchResponse{
		Outcome: controllers.OutcomeDiscovery,
		Item: &controllers.Item{
			TMDBID: 438631, Kind: models.MediaTypeMovie, Title: "Dune_Part", Year: "2021",
			Rating: 7.84, Overview: "Arrakis", PosterURL: "https://image.tmdb.org/t/p/w500/d.jpg",
		},
		Torrent: &controllers.Torrent{
			URL:   "https://yts.mx/movies/dune-2021",
			Links: []controllers.TorrentLink{{Quality: "720p"}, {Quality: "1080p"}},
		},
		Streams:  []controllers.StreamLink{{Name: "vidsrc.xyz", URL: "https://vidsrc.xyz/embed/movie/438631"}},
		Advisory: true,
		Actions:  []controllers.Action{controllers.ActionRequest, controllers.ActionFavorite},
	}

	c := renderSearch(resp)

	assert.Contains(t, c.text, `*Dune\_Part* (2021)`)
	assert.Contains(t, c.text, "7.8/10")
	assert.Contains(t, c.text, "Calidad: 720p, 1080p")
	assert.Contains(t, c.text, "PUBLICIDAD")
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/d.jpg", c.photo)
	assert.Equal(t, []string{
		"https://yts.mx/movies/dune-2021",
		"https://vidsrc.xyz/embed/movie/438631",
		"request_movie_438631",
		"add_fav_movie_438631",
	}, buttonData(c))

	photo, ok := c.chattable(5).(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ModeMarkdown, photo.ParseMode)
}

func TestRenderLocalOutcomes(t *testing.T) {
	media := &models.Media{ID: 7, Title: "Origen", Year: 2010, Quality: "1080p"}

	available := renderSearch(&controllers.SearchResponse{
		Outcome: controllers.OutcomeLocal,
		Local:   media,
		Item:    &controllers.Item{TMDBID: 27205, Kind: models.MediaTypeMovie, Title: "Origen"},
		Actions: []controllers.Action{controllers.ActionSend, controllers.ActionFavorite},
	})
	assert.Contains(t, available.text, "DISPONIBLE EN EL CANAL")
	assert.Contains(t, available.text, "*Origen* (2010)")
	assert.Contains(t, available.text, "1080p")
	assert.Contains(t, available.text, "Español")
	assert.Equal(t, []string{"send_7", "add_fav_movie_27205"}, buttonData(available))

	_, isMessage := available.chattable(5).(tgbotapi.MessageConfig)
	assert.True(t, isMessage, "no poster means a text message")

	minimal := renderSearch(&controllers.SearchResponse{Outcome: controllers.OutcomeLocalMinimal, Local: media})
	assert.Contains(t, minimal.text, "Origen")
	assert.Equal(t, []string{"send_7"}, buttonData(minimal))

	bare := renderSearch(&controllers.SearchResponse{Outcome: controllers.OutcomeLocalBare, Local: media})
	assert.Contains(t, bare.text, "Encontrado")
	assert.Equal(t, []string{"send_7"}, buttonData(bare))
}

func TestRenderTerminalOutcomes(t *testing.T) {
	assert.Equal(t, textNotFound, renderSearch(&controllers.SearchResponse{Outcome: controllers.OutcomeNotFound}).text)
	assert.Equal(t, textSearchFailed, renderSearch(&controllers.SearchResponse{Outcome: controllers.OutcomeError}).text)
	assert.Equal(t, textDetailsFailed, renderSearch(&controllers.SearchResponse{Outcome: controllers.OutcomeError, Detailed: true}).text)
}

func TestRenderDetails(t *testing.T) {
	item := &controllers.Item{
		TMDBID: 1399, Kind: models.MediaTypeTV, Title: "Juego de tronos", OriginalTitle: "Game of Thrones",
		Year: "2011", Rating: 8.4, Genres: []string{"Drama"}, Seasons: 8,
		Directors: []string{"David Benioff", "D. B. Weiss"}, Cast: []string{"Emilia Clarke"},
		Overview: strings.Repeat("a", 2000), TrailerURL: "https://www.youtube.com/watch?v=x",
		Providers: &tmdb.Providers{Flatrate: []string{"HBO Max"}},
		PosterURL: "https://image.tmdb.org/t/p/w500/g.jpg",
	}

	local := renderSearch(&controllers.SearchResponse{
		Outcome: controllers.OutcomeLocal, Detailed: true,
		Local: &models.Media{ID: 3}, Item: item,
		Actions: []controllers.Action{controllers.ActionSend},
	})
	assert.Contains(t, local.text, "8 Temporadas")
	assert.Contains(t, local.text, "David Benioff, D. B. Weiss")
	assert.Contains(t, local.text, "HBO Max")
	assert.Equal(t, []string{"send_3", "https://www.youtube.com/watch?v=x"}, buttonData(local))

	// Too long for a photo caption
	_, isMessage := local.chattable(5).(tgbotapi.MessageConfig)
	assert.True(t, isMessage)

	item.Overview = "Corto"
	remote := renderSearch(&controllers.SearchResponse{
		Outcome: controllers.OutcomeDiscovery, Detailed: true, Item: item, Advisory: true,
		Streams: []controllers.StreamLink{{Name: "vidsrc.to", URL: "https://vidsrc.to/embed/tv/1399"}},
		Actions: []controllers.Action{controllers.ActionRequest},
	})
	assert.Contains(t, remote.text, "AdBlock")
	assert.Equal(t, []string{"https://vidsrc.to/embed/tv/1399", "request_tv_1399", "https://www.youtube.com/watch?v=x"}, buttonData(remote))
	_, isPhoto := remote.chattable(5).(tgbotapi.PhotoConfig)
	assert.True(t, isPhoto)
}

func TestRenderLists(t *testing.T) {
	trending := renderTrending([]*controllers.Item{{TMDBID: 1, Kind: models.MediaTypeMovie, Title: "Uno", Rating: 7}})
	assert.Contains(t, trending.text, "1. *Uno* (⭐ 7.0)")
	assert.Equal(t, []string{"details_movie_1"}, buttonData(trending))

	assert.Equal(t, textNoFavorites, renderFavorites(nil).text)
	favs := renderFavorites([]*models.Favorite{{TMDBID: 1399, MediaType: models.MediaTypeTV, Title: "Dark"}})
	assert.Equal(t, []string{"details_tv_1399"}, buttonData(favs))

	assert.Equal(t, textEmptyCollection, renderRandom(nil).text)
	assert.Equal(t, []string{"send_4"}, buttonData(renderRandom(&models.Media{ID: 4})))
	id := int64(27205)
	assert.Equal(t, []string{"details_movie_27205"}, buttonData(renderRandom(&models.Media{ID: 4, TMDBID: &id})))

	digest := renderRequestDigest([]*models.Request{{ID: 2, Title: "Dune", UserID: 100}})
	assert.Contains(t, digest.text, "#2 Dune")
	assert.Equal(t, []string{"req_ok_2"}, buttonData(digest))
}

func TestRenderSummary(t *testing.T) {
	text := renderSummary(&controllers.Summary{
		Medias:       3,
		MediasByType: map[models.MediaType]int64{models.MediaTypeMovie: 2, models.MediaTypeTV: 1},
		Users:        10,
		Maintenance:  true,
	})
	assert.Contains(t, text, "Películas/Series: *3*")
	assert.Contains(t, text, "Usuarios: *10*")
	assert.Contains(t, text, "Activado")
}
