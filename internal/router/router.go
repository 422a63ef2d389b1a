package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-blog/internal/handlers"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
)

// SessionManager starts, ends and resolves sessions.
type SessionManager interface {
	middlewares.CurrentUserGetter
	handlers.SessionStarter
	handlers.SessionEnder
}

// AuthService registers and authenticates users.
type AuthService interface {
	handlers.Authenticator
	handlers.Registerer
}

// PostService lists, shows and edits posts.
type PostService interface {
	handlers.HomeLister
	handlers.UserPostsLister
	handlers.PostGetter
	handlers.PostCreator
	handlers.PostUpdater
	handlers.PostDeleter
}

// ProfileService edits and deletes accounts.
type ProfileService interface {
	handlers.ProfileUpdater
	handlers.AccountDeleter
}

// Config holds everything the routing table dispatches to.
type Config struct {
	DB             *sqlx.DB
	Sessions       SessionManager
	Auth           AuthService
	Posts          PostService
	Profiles       ProfileService
	Validator      handlers.FormValidator
	View           handlers.Renderer
	Metrics        *middlewares.HTTPMetrics
	MetricsHandler http.Handler
	LoginLimiter   *middlewares.RateLimiter
	StaticDir      string
	MaxUploadBytes int64
}

// New builds the routing table.
func New(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(cfg.Metrics.Middleware)
	r.Use(chimiddleware.NoCache)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		cfg.View.Error(w, r, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		cfg.View.Error(w, r, http.StatusMethodNotAllowed)
	})

	r.Get("/health", handlers.NewHealthHandler(cfg.DB))
	r.Handle("/metrics", cfg.MetricsHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	tx := middlewares.TxMiddleware(cfg.DB)

	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(cfg.Sessions))

		home := handlers.NewHomeHandler(cfg.Posts, cfg.View)
		r.Get("/", home)
		r.Get("/home", home)

		login := handlers.NewLoginHandler(cfg.Auth, cfg.Sessions, cfg.Validator, cfg.View)
		r.Get("/login", login)
		r.With(cfg.LoginLimiter.Middleware).Post("/login", login)
		r.Get("/logout", handlers.NewLogoutHandler(cfg.Sessions))

		register := handlers.NewRegisterHandler(cfg.Auth, cfg.Validator, cfg.View)
		r.Get("/register", register)
		r.Post("/register", register)

		r.Get("/post/{postID}", handlers.NewPostHandler(cfg.Posts, cfg.View))

		userPosts := handlers.NewUserPostsHandler(cfg.Posts, cfg.View)
		r.Get("/user/{username}", userPosts)
		r.Get("/user/{username}/", userPosts)

		// Login required
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireLogin)

			profile := handlers.NewProfileHandler(cfg.Profiles, cfg.Validator, cfg.View, cfg.MaxUploadBytes)
			r.Get("/profile", profile)
			r.With(tx).Post("/profile", profile)
			r.With(tx).Post("/profile/{username}/delete", handlers.NewAccountDeleteHandler(cfg.Profiles, cfg.Sessions, cfg.View))

			postNew := handlers.NewPostNewHandler(cfg.Posts, cfg.Validator, cfg.View)
			r.Get("/post/new", postNew)
			r.Post("/post/new", postNew)

			postUpdate := handlers.NewPostUpdateHandler(cfg.Posts, cfg.Validator, cfg.View)
			r.Get("/post/{postID}/update", postUpdate)
			r.Post("/post/{postID}/update", postUpdate)
			r.Post("/post/{postID}/delete", handlers.NewPostDeleteHandler(cfg.Posts, cfg.View))
		})
	})

	return r
}
