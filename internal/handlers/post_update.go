package handlers

//go:generate mockgen -source=post_update.go -destination=post_update_mock.go -package=handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/sbilibin2017/gw-blog/internal/views"
)

// PostUpdater edits posts owned by the current user.
type PostUpdater interface {
	GetOwned(ctx context.Context, user *models.UserDB, postID int64) (*models.PostWithAuthor, error)
	Update(ctx context.Context, user *models.UserDB, postID int64, title, content string) error
}

const legendUpdatePost = "Update Post"

// NewPostUpdateHandler returns the handler of the edit post form.
// Only the owner may see the form or submit it.
func NewPostUpdateHandler(svc PostUpdater, validator FormValidator, view Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := postID(r)
		if !ok {
			view.Error(w, r, http.StatusNotFound)
			return
		}
		user := middlewares.UserFromContext(r.Context())

		post, err := svc.GetOwned(r.Context(), user, id)
		if err != nil {
			postError(w, r, view, err)
			return
		}

		page := &views.Page{
			Title:  legendUpdatePost,
			Legend: legendUpdatePost,
			Action: fmt.Sprintf("/post/%d/update", id),
			Form:   models.PostForm{Title: post.Title, Content: post.Content},
		}

		if r.Method != http.MethodPost {
			view.Render(w, r, http.StatusOK, views.PagePostForm, page)
			return
		}

		form := decodePostForm(r)
		page.Form = form
		if page.Errors = validator.Validate(&form); page.Errors != nil {
			view.Render(w, r, http.StatusOK, views.PagePostForm, page)
			return
		}

		if err := svc.Update(r.Context(), user, id, form.Title, form.Content); err != nil {
			postError(w, r, view, err)
			return
		}

		flash.Add(w, r, flash.Success(msgPostUpdated))
		redirect(w, r, fmt.Sprintf("/post/%d", id))
	}
}

// postError maps post service errors to error pages.
func postError(w http.ResponseWriter, r *http.Request, view Renderer, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		view.Error(w, r, http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		view.Error(w, r, http.StatusForbidden)
	default:
		view.Error(w, r, http.StatusInternalServerError)
	}
}
