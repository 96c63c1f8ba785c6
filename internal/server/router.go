package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/config"
	handlers "yatube/internal/handler"
	"yatube/internal/middleware"
)

// NewRouter builds the route table wrapped in logging, CORS and
// authentication middleware.
func NewRouter(h *handlers.Handlers, cfg *config.Config) http.Handler {
	r := mux.NewRouter()

	loginRequired := middleware.LoginRequired(cfg.Auth.LoginURL)
	private := func(fn http.HandlerFunc) http.Handler {
		return loginRequired(fn)
	}

	// public pages
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/group/{slug}/", h.GroupPosts).Methods(http.MethodGet)
	r.HandleFunc("/profile/{username}/", h.Profile).Methods(http.MethodGet)
	r.HandleFunc("/posts/{post_id:[0-9]+}/", h.PostDetail).Methods(http.MethodGet)

	// pages for logged in users
	r.Handle("/create/", private(h.PostCreate)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/posts/{post_id:[0-9]+}/edit/", private(h.PostEdit)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/posts/{post_id:[0-9]+}/comment/", private(h.AddComment)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/follow/", private(h.FollowIndex)).Methods(http.MethodGet)
	r.Handle("/profile/{username}/follow/", private(h.ProfileFollow)).Methods(http.MethodGet)
	r.Handle("/profile/{username}/unfollow/", private(h.ProfileUnfollow)).Methods(http.MethodGet)

	// auth
	r.HandleFunc("/auth/signup/", h.Signup).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/login/", h.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/logout/", h.Logout).Methods(http.MethodGet, http.MethodPost)

	// static pages
	r.HandleFunc("/about/author/", h.AboutAuthor).Methods(http.MethodGet)
	r.HandleFunc("/about/tech/", h.AboutTech).Methods(http.MethodGet)

	// service endpoints
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/tables", h.TablesHandler).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	return middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
		middleware.AuthMiddleware(h.AuthService, cfg.Auth.CookieName),
	)
}
