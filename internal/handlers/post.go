package handlers

//go:generate mockgen -source=post.go -destination=post_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/sbilibin2017/gw-blog/internal/views"
)

// PostGetter fetches a single post.
type PostGetter interface {
	Get(ctx context.Context, postID int64) (*models.PostWithAuthor, error)
}

// NewPostHandler returns the handler showing one post.
func NewPostHandler(svc PostGetter, view Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := postID(r)
		if !ok {
			view.Error(w, r, http.StatusNotFound)
			return
		}

		post, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				view.Error(w, r, http.StatusNotFound)
				return
			}
			view.Error(w, r, http.StatusInternalServerError)
			return
		}

		view.Render(w, r, http.StatusOK, views.PagePost, &views.Page{
			Title: post.Title,
			Post:  post,
			Owner: post.IsOwnedBy(middlewares.UserFromContext(r.Context())),
		})
	}
}
