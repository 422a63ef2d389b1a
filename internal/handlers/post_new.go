package handlers

//go:generate mockgen -source=post_new.go -destination=post_new_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/views"
)

// PostCreator stores new posts.
type PostCreator interface {
	Create(ctx context.Context, author *models.UserDB, title, content string) (int64, error)
}

const legendNewPost = "New Post"

// NewPostNewHandler returns the handler of the new post form. Requires a logged in user.
func NewPostNewHandler(svc PostCreator, validator FormValidator, view Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := &views.Page{
			Title:  legendNewPost,
			Legend: legendNewPost,
			Action: "/post/new",
			Form:   models.PostForm{},
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

		user := middlewares.UserFromContext(r.Context())
		if _, err := svc.Create(r.Context(), user, form.Title, form.Content); err != nil {
			view.Error(w, r, http.StatusInternalServerError)
			return
		}

		flash.Add(w, r, flash.Success(msgPostCreated))
		redirect(w, r, "/")
	}
}

func decodePostForm(r *http.Request) models.PostForm {
	return models.PostForm{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: r.PostFormValue("content"),
	}
}
