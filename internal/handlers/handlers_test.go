package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/validation"
	"github.com/sbilibin2017/gw-blog/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView(t *testing.T) *views.Renderer {
	t.Helper()
	view, err := views.New()
	require.NoError(t, err)
	return view
}

func newFormRequest(method, target string, form url.Values) *http.Request {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	r := httptest.NewRequest(method, target, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return r
}

func withUser(r *http.Request, user *models.UserDB) *http.Request {
	return r.WithContext(middlewares.WithUser(r.Context(), user))
}

func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// flashes returns the flashes a response queued for the next page.
func flashes(rr *httptest.ResponseRecorder) []models.Flash {
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		if c.Name == flash.CookieName && c.MaxAge >= 0 {
			next.AddCookie(c)
		}
	}
	return flash.Pop(httptest.NewRecorder(), next)
}

var testValidator = validation.New()

func TestPageNumber(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=abc", 1},
		{"?page=-2", -2},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		assert.Equal(t, tt.want, pageNumber(r), tt.query)
	}
}

func TestPostID(t *testing.T) {
	r := withURLParams(httptest.NewRequest(http.MethodGet, "/post/12", nil), "postID", "12")
	id, ok := postID(r)
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"abc", "0", "-1", ""} {
		r := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "postID", raw)
		_, ok := postID(r)
		assert.False(t, ok, raw)
	}
}

func TestLocalRedirect(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"", "/"},
		{"/profile", "/profile"},
		{"/post/3/update?x=1", "/post/3/update?x=1"},
		{"https://evil.example", "/"},
		{"//evil.example/path", "/"},
		{"/\\evil.example", "/"},
		{"profile", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, localRedirect(tt.next), tt.next)
	}
}
