package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// LoginMessage is flashed when an anonymous client hits a login-required page.
const LoginMessage = "Please log in to access this page."

// CurrentUserGetter resolves the identity carried by a request.
type CurrentUserGetter interface {
	Current(ctx context.Context, r *http.Request) (*models.UserDB, error)
}

type userContextKey struct{}

var userKey = userContextKey{}

// WithUser stores the current user in the context.
func WithUser(ctx context.Context, user *models.UserDB) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the current user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.UserDB {
	user, _ := ctx.Value(userKey).(*models.UserDB)
	return user
}

// AuthMiddleware resolves the session identity of every request and stores it in the context.
// Anonymous requests pass through without a user.
func AuthMiddleware(sessions CurrentUserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user, err := sessions.Current(ctx, r)
			if err != nil {
				logger.Log.Errorw("failed to resolve session", "request_id", RequestIDFromContext(ctx), "err", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if user != nil {
				ctx = WithUser(ctx, user)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin redirects anonymous requests to the login page, remembering where they were headed.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			logger.Log.Infow("login required", "uri", r.RequestURI)
			flash.Add(w, r, flash.Info(LoginMessage))
			target := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
