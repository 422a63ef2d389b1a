package handlers

//go:generate mockgen -source=home.go -destination=home_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/views"
)

// HomeLister lists all posts page by page.
type HomeLister interface {
	Home(ctx context.Context, page int) (*models.PostPage, error)
}

// NewHomeHandler returns the handler of the paginated list of all posts, newest first.
func NewHomeHandler(svc HomeLister, view Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.Home(r.Context(), pageNumber(r))
		if err != nil {
			view.Error(w, r, http.StatusInternalServerError)
			return
		}

		view.Render(w, r, http.StatusOK, views.PageHome, &views.Page{
			Title:   "Home",
			Posts:   posts,
			PageURL: "/",
		})
	}
}
