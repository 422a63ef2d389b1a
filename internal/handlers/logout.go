package handlers

//go:generate mockgen -source=logout.go -destination=logout_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/logger"
)

// SessionEnder ends the session carried by a request.
type SessionEnder interface {
	End(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// NewLogoutHandler returns the logout handler. The session cookie is cleared even
// when revocation fails.
func NewLogoutHandler(sessions SessionEnder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.End(r.Context(), w, r); err != nil {
			logger.Log.Errorw("logout: failed to end session", "err", err)
		}
		redirect(w, r, "/")
	}
}
