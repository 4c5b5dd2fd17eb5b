package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amaumene/cineslime/internal/models"
)

// Callback data prefixes. Telegram caps callback data at 64 bytes.
const (
	prefixDetails  = "details_"
	prefixSend     = "send_"
	prefixRequest  = "request_"
	prefixFavorite = "add_fav_"
	prefixDone     = "req_ok_"
)

type callbackAction string

const (
	callbackDetails  callbackAction = "details"
	callbackSend     callbackAction = "send"
	callbackRequest  callbackAction = "request"
	callbackFavorite callbackAction = "favorite"
	callbackDone     callbackAction = "done"
)

// callback is decoded button data
type callback struct {
	action callbackAction
	kind   models.MediaType // details, request, favorite
	id     int64            // tmdb id, or local media id for send, or request id for done
}

func detailsData(kind models.MediaType, tmdbID int64) string {
	return fmt.Sprintf("%s%s_%d", prefixDetails, kind, tmdbID)
}

func sendData(mediaID uint) string {
	return fmt.Sprintf("%s%d", prefixSend, mediaID)
}

func requestData(kind models.MediaType, tmdbID int64) string {
	return fmt.Sprintf("%s%s_%d", prefixRequest, kind, tmdbID)
}

func favoriteData(kind models.MediaType, tmdbID int64) string {
	return fmt.Sprintf("%s%s_%d", prefixFavorite, kind, tmdbID)
}

func doneData(requestID uint) string {
	return fmt.Sprintf("%s%d", prefixDone, requestID)
}

// parseCallback decodes button data; id-only data parses as a movie
func parseCallback(data string) (callback, bool) {
	switch {
	case strings.HasPrefix(data, prefixDetails):
		return parseKindID(callbackDetails, strings.TrimPrefix(data, prefixDetails))
	case strings.HasPrefix(data, prefixRequest):
		return parseKindID(callbackRequest, strings.TrimPrefix(data, prefixRequest))
	case strings.HasPrefix(data, prefixFavorite):
		return parseKindID(callbackFavorite, strings.TrimPrefix(data, prefixFavorite))
	case strings.HasPrefix(data, prefixDone):
		return parseID(callbackDone, strings.TrimPrefix(data, prefixDone))
	case strings.HasPrefix(data, prefixSend):
		return parseID(callbackSend, strings.TrimPrefix(data, prefixSend))
	default:
		return callback{}, false
	}
}

func parseKindID(action callbackAction, rest string) (callback, bool) {
	kind := models.MediaTypeMovie
	if k, id, found := strings.Cut(rest, "_"); found {
		parsed, ok := models.ParseMediaType(k)
		if !ok {
			return callback{}, false
		}
		kind, rest = parsed, id
	}
	cb, ok := parseID(action, rest)
	cb.kind = kind
	return cb, ok
}

func parseID(action callbackAction, raw string) (callback, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return callback{}, false
	}
	return callback{action: action, id: id}, true
}
