package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// CookieName is the cookie holding flashes until the next rendered page.
const CookieName = "flash"

// Add queues flashes for the next rendered page, keeping any not yet shown.
func Add(w http.ResponseWriter, r *http.Request, flashes ...models.Flash) {
	queued := append(read(r), flashes...)

	data, err := json.Marshal(queued)
	if err != nil {
		logger.Log.Errorw("failed to encode flashes", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the queued flashes and clears the cookie.
func Pop(w http.ResponseWriter, r *http.Request) []models.Flash {
	flashes := read(r)
	if len(flashes) == 0 {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return flashes
}

func read(r *http.Request) []models.Flash {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		logger.Log.Debugw("malformed flash cookie", "error", err)
		return nil
	}

	var flashes []models.Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		logger.Log.Debugw("malformed flash cookie", "error", err)
		return nil
	}
	return flashes
}

func Success(message string) models.Flash {
	return models.Flash{Category: models.FlashSuccess, Message: message}
}

func Danger(message string) models.Flash {
	return models.Flash{Category: models.FlashDanger, Message: message}
}

func Info(message string) models.Flash {
	return models.Flash{Category: models.FlashInfo, Message: message}
}
