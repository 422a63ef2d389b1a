package handlers

//go:generate mockgen -source=post_delete.go -destination=post_delete_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// PostDeleter removes posts owned by the current user.
type PostDeleter interface {
	Delete(ctx context.Context, user *models.UserDB, postID int64) error
}

// NewPostDeleteHandler returns the handler deleting a post owned by the current user.
func NewPostDeleteHandler(svc PostDeleter, view Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := postID(r)
		if !ok {
			view.Error(w, r, http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), middlewares.UserFromContext(r.Context()), id); err != nil {
			postError(w, r, view, err)
			return
		}

		flash.Add(w, r, flash.Success(msgPostDeleted))
		redirect(w, r, "/")
	}
}
