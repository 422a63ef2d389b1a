package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRender_Home(t *testing.T) {
	rd, err := New()
	require.NoError(t, err)

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	page := &models.PostPage{
		Posts: []models.PostWithAuthor{{
			PostDB:          models.PostDB{PostID: 7, Title: "Hello", Content: "World", CreatedAt: created},
			AuthorUsername:  "alice",
			AuthorImageFile: "abc.png",
		}},
		Page:    1,
		PerPage: models.PostsPerPage,
		Total:   11,
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rd.Render(w, r, http.StatusOK, PageHome, &Page{Title: "Home", Posts: page, PageURL: "/"})

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, body, "<title>Blog - Home</title>")
	assert.Contains(t, body, `href="/post/7">Hello</a>`)
	assert.Contains(t, body, "2024-03-01")
	assert.Contains(t, body, `src="/static/pics/abc.png"`)
	assert.Contains(t, body, `href="/?page=3"`)
	assert.Contains(t, body, `rel="next" href="/?page=2"`)
	assert.NotContains(t, body, `rel="prev"`)
	assert.Contains(t, body, `href="/login"`)
}

func TestRender_PaginationPrevNext(t *testing.T) {
	rd, err := New()
	require.NoError(t, err)

	tests := []struct {
		name     string
		page     int
		contains []string
		missing  []string
	}{
		{name: "middle page", page: 2, contains: []string{`rel="prev" href="/user/bob?page=1"`, `rel="next" href="/user/bob?page=3"`}},
		{name: "last page", page: 3, contains: []string{`rel="prev" href="/user/bob?page=2"`}, missing: []string{`rel="next"`}},
		{name: "beyond range", page: 9, contains: []string{`rel="prev" href="/user/bob?page=8"`}, missing: []string{`rel="next"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &models.PostPage{Posts: []models.PostWithAuthor{}, Page: tt.page, PerPage: models.PostsPerPage, Total: 11}

			w := httptest.NewRecorder()
			rd.Render(w, httptest.NewRequest(http.MethodGet, "/user/bob", nil), http.StatusOK, PageUser,
				&Page{Title: "bob", Posts: page, PageURL: "/user/bob", AuthorName: "bob"})

			body := w.Body.String()
			for _, c := range tt.contains {
				assert.Contains(t, body, c)
			}
			for _, m := range tt.missing {
				assert.NotContains(t, body, m)
			}
		})
	}
}

func TestRender_EscapesUsernameInLinks(t *testing.T) {
	rd, err := New()
	require.NoError(t, err)

	odd := "a?b#c/d"
	page := &models.PostPage{
		Posts: []models.PostWithAuthor{{
			PostDB:         models.PostDB{PostID: 3, Title: "t", Content: "c"},
			AuthorUsername: odd,
		}},
		Page: 1, PerPage: models.PostsPerPage, Total: 1,
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(middlewares.WithUser(r.Context(), &models.UserDB{UserID: 1, Username: odd}))

	w := httptest.NewRecorder()
	rd.Render(w, r, http.StatusOK, PageHome, &Page{Title: "Home", Posts: page, PageURL: "/"})
	assert.Contains(t, w.Body.String(), `href="/user/a%3Fb%23c%2Fd"`)

	w = httptest.NewRecorder()
	rd.Render(w, r, http.StatusOK, PageProfile, &Page{Title: "profile", Form: models.ProfileForm{Username: odd}})
	assert.Contains(t, w.Body.String(), `action="/profile/a%3Fb%23c%2Fd/delete"`)
}

func TestRender_FlashesAndCurrentUser(t *testing.T) {
	rd, err := New()
	require.NoError(t, err)

	queued := httptest.NewRecorder()
	flash.Add(queued, httptest.NewRequest(http.MethodPost, "/register", nil), flash.Success("profile created for alice!"))

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range queued.Result().Cookies() {
		r.AddCookie(c)
	}
	alice := &models.UserDB{UserID: 1, Username: "alice", Email: "a@x.com", ImageFile: models.DefaultImageFile}
	r = r.WithContext(middlewares.WithUser(r.Context(), alice))

	w := httptest.NewRecorder()
	rd.Render(w, r, http.StatusOK, PageProfile, &Page{
		Title:   "profile",
		Form:    models.ProfileForm{Username: "alice", Email: "a@x.com"},
		Errors:  models.FormErrors{"email": "Invalid email address."},
		Flashes: []models.Flash{flash.Danger("second")},
	})

	body := w.Body.String()
	assert.Contains(t, body, `class="alert alert-success">profile created for alice!`)
	assert.Contains(t, body, `class="alert alert-danger">second`)
	assert.Less(t, strings.Index(body, "profile created"), strings.Index(body, "second"))
	assert.Contains(t, body, "Invalid email address.")
	assert.Contains(t, body, `href="/logout"`)
	assert.Contains(t, body, `action="/profile/alice/delete"`)
}

func TestRender_EscapesContent(t *testing.T) {
	rd, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	rd.Render(w, httptest.NewRequest(http.MethodGet, "/post/1", nil), http.StatusOK, PagePost, &Page{
		Post: &models.PostWithAuthor{PostDB: models.PostDB{PostID: 1, Title: "<script>x</script>"}},
	})

	assert.NotContains(t, w.Body.String(), "<script>x</script>")
	assert.NotContains(t, w.Body.String(), "/post/1/update")
}

func TestError(t *testing.T) {
	rd, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	rd.Error(w, httptest.NewRequest(http.MethodGet, "/post/9/update", nil), http.StatusForbidden)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "403 Forbidden")
}

func TestError_LogsServerErrorsWithRequestID(t *testing.T) {
	rd, err := New()
	require.NoError(t, err)

	core, logs := observer.New(zapcore.ErrorLevel)
	prev := logger.Log
	logger.Log = zap.New(core).Sugar()
	defer func() { logger.Log = prev }()

	var reqID string
	h := middlewares.LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID = middlewares.RequestIDFromContext(r.Context())
		rd.Error(w, r, http.StatusNotFound)
		rd.Error(httptest.NewRecorder(), r, http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/post/1", nil))

	entries := logs.FilterMessage("server error").All()
	require.Len(t, entries, 1)
	assert.NotEmpty(t, reqID)
	assert.Equal(t, reqID, entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusInternalServerError), entries[0].ContextMap()["status"])
}

func TestRender_UnknownTemplate(t *testing.T) {
	rd, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	rd.Render(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", &Page{})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
