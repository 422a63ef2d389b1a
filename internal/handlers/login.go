package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/sbilibin2017/gw-blog/internal/views"
)

// Authenticator checks user credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.UserDB, error)
}

// SessionStarter binds a user to the client.
type SessionStarter interface {
	Start(ctx context.Context, w http.ResponseWriter, user *models.UserDB, remember bool) error
}

// NewLoginHandler returns the login handler. A successful login redirects to the
// local ?next= target or home. Logged in users are sent home straight away.
func NewLoginHandler(auth Authenticator, sessions SessionStarter, validator FormValidator, view Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middlewares.UserFromContext(r.Context()) != nil {
			redirect(w, r, "/")
			return
		}

		action := "/login"
		if next := r.URL.Query().Get("next"); next != "" {
			action += "?next=" + url.QueryEscape(next)
		}
		page := &views.Page{Title: "Login", Action: action, Form: models.LoginForm{}}

		if r.Method != http.MethodPost {
			view.Render(w, r, http.StatusOK, views.PageLogin, page)
			return
		}

		form := models.LoginForm{
			Username: strings.TrimSpace(r.PostFormValue("username")),
			Password: r.PostFormValue("password"),
			Remember: r.PostFormValue("remember") != "",
		}
		page.Form = form
		if page.Errors = validator.Validate(&form); page.Errors != nil {
			view.Render(w, r, http.StatusOK, views.PageLogin, page)
			return
		}

		user, err := auth.Authenticate(r.Context(), form.Username, form.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				page.Flashes = []models.Flash{flash.Danger(msgLoginFailed)}
				view.Render(w, r, http.StatusOK, views.PageLogin, page)
				return
			}
			view.Error(w, r, http.StatusInternalServerError)
			return
		}

		if err := sessions.Start(r.Context(), w, user, form.Remember); err != nil {
			view.Error(w, r, http.StatusInternalServerError)
			return
		}

		logger.Log.Infow("user logged in", "user_id", user.UserID)
		redirect(w, r, localRedirect(r.URL.Query().Get("next")))
	}
}
