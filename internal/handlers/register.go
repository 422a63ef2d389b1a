package handlers

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/sbilibin2017/gw-blog/internal/views"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password string) error
}

// NewRegisterHandler returns the handler for user registration.
// Nothing is stored unless every check passes.
func NewRegisterHandler(svc Registerer, validator FormValidator, view Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middlewares.UserFromContext(r.Context()) != nil {
			redirect(w, r, "/")
			return
		}

		page := &views.Page{Title: "Register", Form: models.RegisterForm{}}

		if r.Method != http.MethodPost {
			view.Render(w, r, http.StatusOK, views.PageRegister, page)
			return
		}

		form := models.RegisterForm{
			Username:        strings.TrimSpace(r.PostFormValue("username")),
			Email:           strings.TrimSpace(r.PostFormValue("email")),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirm_password"),
		}
		page.Form = form
		if page.Errors = validator.Validate(&form); page.Errors != nil {
			view.Render(w, r, http.StatusOK, views.PageRegister, page)
			return
		}

		if err := svc.Register(r.Context(), form.Username, form.Email, form.Password); err != nil {
			if page.Errors = takenErrors(err); page.Errors != nil {
				view.Render(w, r, http.StatusOK, views.PageRegister, page)
				return
			}
			view.Error(w, r, http.StatusInternalServerError)
			return
		}

		flash.Add(w, r, flash.Success(fmt.Sprintf(msgProfileCreated, form.Username)))
		redirect(w, r, "/login")
	}
}

// takenErrors turns uniqueness errors into field errors. It returns nil for any other error.
func takenErrors(err error) models.FormErrors {
	var errs models.FormErrors
	if errors.Is(err, services.ErrUsernameTaken) {
		errs = models.FormErrors{"username": msgUsernameTaken}
	}
	if errors.Is(err, services.ErrEmailTaken) {
		if errs == nil {
			errs = models.FormErrors{}
		}
		errs["email"] = msgEmailTaken
	}
	return errs
}
