package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/views"
)

// Renderer renders HTML pages.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, page *views.Page)
	Error(w http.ResponseWriter, r *http.Request, status int)
}

// FormValidator checks decoded form input.
type FormValidator interface {
	Validate(form any) models.FormErrors
}

// Messages shown to the user.
const (
	msgProfileCreated  = "profile created for %s!"
	msgLoginFailed     = "Login Unsuccessful. Please check username and password"
	msgProfileUpdated  = "Profile updated"
	msgPostCreated     = "Post created"
	msgPostUpdated     = "Post has been updated"
	msgPostDeleted     = "Post has been deleted"
	msgUserDeleted     = "User has been deleted"
	msgUsernameTaken   = "Username already exists"
	msgEmailTaken      = "Email already exists"
	msgInvalidImage    = "Invalid image file."
	msgUploadTooLarge  = "File is too large."
	msgMalformedUpload = "Malformed upload."
)

// pageNumber reads ?page=N. Missing or malformed values mean the first page.
func pageNumber(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

// usernameParam reads the {username} URL parameter. Routing matches on the raw
// path when the request escapes a reserved character, so the value is unescaped then.
func usernameParam(r *http.Request) string {
	name := chi.URLParam(r, "username")
	if r.URL.RawPath == "" {
		return name
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

// postID reads the {postID} URL parameter.
func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// localRedirect returns next when it is a path on this site, otherwise "/".
func localRedirect(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	return next
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}
