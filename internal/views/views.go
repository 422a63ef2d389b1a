package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PicturesURL is the URL prefix profile pictures are served under.
const PicturesURL = "/static/pics/"

// Page names.
const (
	PageHome     = "home"
	PageUser     = "user"
	PagePost     = "post"
	PagePostForm = "post_form"
	PageLogin    = "login"
	PageRegister = "register"
	PageProfile  = "profile"
	PageError    = "error"
)

var pageNames = []string{PageHome, PageUser, PagePost, PagePostForm, PageLogin, PageRegister, PageProfile, PageError}

// Page is the data handed to a template. CurrentUser and the queued flashes are
// filled in by the Renderer.
type Page struct {
	Title       string
	Legend      string
	Action      string
	CurrentUser *models.UserDB
	Flashes     []models.Flash

	Form   any
	Errors models.FormErrors

	Posts      *models.PostPage
	PageURL    string
	AuthorName string

	Post  *models.PostWithAuthor
	Owner bool

	Status  int
	Message string
}

// Renderer executes the embedded HTML templates.
type Renderer struct {
	templates map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"picture": func(name string) string {
		if name == "" {
			name = models.DefaultImageFile
		}
		return PicturesURL + path.Base(name)
	},
	"pathescape": url.PathEscape,
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	rd := &Renderer{templates: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		rd.templates[name] = t
	}
	return rd, nil
}

// Render writes the named page with the given status. Flashes queued by earlier
// requests are shown before the page's own.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page *Page) {
	t, ok := rd.templates[name]
	if !ok {
		logger.Log.Errorw("unknown template", "name", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page.CurrentUser = middlewares.UserFromContext(r.Context())
	page.Flashes = append(flash.Pop(w, r), page.Flashes...)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		logger.Log.Errorw("failed to render template", "request_id", middlewares.RequestIDFromContext(r.Context()), "name", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Log.Errorw("failed to write response", "name", name, "error", err)
	}
}

// Error renders the error page for status. Server errors are logged with the request id.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, status int) {
	if status >= http.StatusInternalServerError {
		logger.Log.Errorw("server error",
			"request_id", middlewares.RequestIDFromContext(r.Context()),
			"method", r.Method,
			"uri", r.RequestURI,
			"status", status,
		)
	}
	rd.Render(w, r, status, PageError, &Page{
		Title:   http.StatusText(status),
		Status:  status,
		Message: http.StatusText(status),
	})
}
