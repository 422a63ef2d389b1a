package handlers

//go:generate mockgen -source=profile.go -destination=profile_mock.go -package=handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/sbilibin2017/gw-blog/internal/views"
)

// ProfileUpdater changes the current user's account details.
type ProfileUpdater interface {
	Update(ctx context.Context, user *models.UserDB, username, email string, picture *services.Picture) (*models.UserDB, error)
}

// NewProfileHandler returns the handler of the profile page. A GET shows the form
// pre-filled with the current values; a POST updates username, email and optionally
// the picture. Uploads above maxUploadBytes are rejected.
func NewProfileHandler(svc ProfileUpdater, validator FormValidator, view Renderer, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		page := &views.Page{
			Title: "profile",
			Form:  models.ProfileForm{Username: user.Username, Email: user.Email},
		}

		if r.Method != http.MethodPost {
			view.Render(w, r, http.StatusOK, views.PageProfile, page)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				page.Errors = models.FormErrors{"picture": msgUploadTooLarge}
				view.Render(w, r, http.StatusRequestEntityTooLarge, views.PageProfile, page)
				return
			}
			logger.Log.Infow("malformed profile upload", "err", err)
			page.Errors = models.FormErrors{"picture": msgMalformedUpload}
			view.Render(w, r, http.StatusBadRequest, views.PageProfile, page)
			return
		}

		form := models.ProfileForm{
			Username: strings.TrimSpace(r.PostFormValue("username")),
			Email:    strings.TrimSpace(r.PostFormValue("email")),
		}

		var picture *services.Picture
		file, header, err := r.FormFile("picture")
		switch {
		case err == nil && header.Filename != "":
			defer file.Close()
			form.PictureName = header.Filename
			picture = &services.Picture{Filename: header.Filename, Data: file}
		case err == nil:
			file.Close()
		case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
			logger.Log.Errorw("failed to read uploaded picture", "err", err)
			view.Error(w, r, http.StatusInternalServerError)
			return
		}
		defer removeUploads(r.MultipartForm)

		page.Form = form
		if page.Errors = validator.Validate(&form); page.Errors != nil {
			view.Render(w, r, http.StatusOK, views.PageProfile, page)
			return
		}

		if _, err := svc.Update(r.Context(), user, form.Username, form.Email, picture); err != nil {
			if errors.Is(err, services.ErrInvalidImage) {
				page.Errors = models.FormErrors{"picture": msgInvalidImage}
				view.Render(w, r, http.StatusOK, views.PageProfile, page)
				return
			}
			if page.Errors = takenErrors(err); page.Errors != nil {
				// A conflict may come from a failed write, so the request transaction must not commit.
				view.Render(w, r, http.StatusConflict, views.PageProfile, page)
				return
			}
			view.Error(w, r, http.StatusInternalServerError)
			return
		}

		flash.Add(w, r, flash.Success(msgProfileUpdated))
		redirect(w, r, "/profile")
	}
}

func removeUploads(form *multipart.Form) {
	if form == nil {
		return
	}
	if err := form.RemoveAll(); err != nil {
		logger.Log.Warnw("failed to remove temporary upload files", "err", err)
	}
}
