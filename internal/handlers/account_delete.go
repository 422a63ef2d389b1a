package handlers

//go:generate mockgen -source=account_delete.go -destination=account_delete_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
)

// AccountDeleter deletes accounts together with their posts.
type AccountDeleter interface {
	DeleteAccount(ctx context.Context, actor *models.UserDB, username string) (*models.UserDB, error)
}

// NewAccountDeleteHandler returns the handler deleting the account named in the URL.
// Any logged in user may call it. Deleting one's own account also ends the session
// once the deletion has committed.
func NewAccountDeleteHandler(svc AccountDeleter, sessions SessionEnder, view Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middlewares.UserFromContext(r.Context())

		deleted, err := svc.DeleteAccount(r.Context(), actor, usernameParam(r))
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				view.Error(w, r, http.StatusNotFound)
				return
			}
			view.Error(w, r, http.StatusInternalServerError)
			return
		}

		if deleted.UserID == actor.UserID {
			middlewares.TxHooks{}.AfterCommit(r.Context(), func() {
				if err := sessions.End(context.WithoutCancel(r.Context()), w, r); err != nil {
					logger.Log.Errorw("failed to end session of deleted account", "user_id", deleted.UserID, "err", err)
				}
			})
		}

		flash.Add(w, r, flash.Success(msgUserDeleted))
		redirect(w, r, "/")
	}
}
