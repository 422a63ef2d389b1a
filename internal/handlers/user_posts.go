package handlers

//go:generate mockgen -source=user_posts.go -destination=user_posts_mock.go -package=handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/views"
)

// UserPostsLister lists the posts of one user page by page.
type UserPostsLister interface {
	UserPosts(ctx context.Context, username string, page int) (*models.UserPostPage, error)
}

// NewUserPostsHandler returns the handler of one user's posts.
// An unknown username renders an empty list.
func NewUserPostsHandler(svc UserPostsLister, view Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := usernameParam(r)

		result, err := svc.UserPosts(r.Context(), username, pageNumber(r))
		if err != nil {
			view.Error(w, r, http.StatusInternalServerError)
			return
		}

		view.Render(w, r, http.StatusOK, views.PageUser, &views.Page{
			Title:      username,
			Posts:      &result.PostPage,
			PageURL:    "/user/" + url.PathEscape(username),
			AuthorName: username,
		})
	}
}
