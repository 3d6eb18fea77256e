package handlers

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/juho05/log"
)

const (
	DefaultAdminPath = "/Admin"
	LoginPath        = "/Admin/Login"
)

func (h *Handler) registerMiddlewares() {
	h.Router.Use(recoverPanic)
	if h.BehindProxy {
		h.Router.Use(middleware.RealIP)
	}
	h.Router.Use(middleware.RequestID)
	h.Router.Use(middleware.Timeout(60 * time.Second))
	h.Router.Use(logRequest)
	h.Router.Use(securityHeaders)
}

func (h *Handler) RegisterRoutes() {
	if h.Router == nil {
		h.Router = chi.NewRouter()
	}
	h.registerMiddlewares()

	h.registerStaticRoutes()

	h.Router.Group(func(r chi.Router) {
		r.Use(h.SessionManager.LoadAndSave)
		r.Use(h.csrf)

		r.Get("/", h.index)
		r.Route(DefaultAdminPath, h.adminRoutes)
	})
}

func (h *Handler) adminRoutes(r chi.Router) {
	r.With(h.auth).Get("/", h.adminIndex)
	r.Get("/Login", h.adminLoginPage)
	r.Post("/Login", h.adminLoginPost)
}

func (h *Handler) registerStaticRoutes() {
	img, err := fs.Sub(h.StaticFS, "img")
	if err != nil {
		log.Fatalf("Failed to register img directory: %s", err)
	}
	h.Router.With(corsHeaders, staticCache(7*24*time.Hour)).Handle("/static/img/*", http.StripPrefix("/static/img/", http.FileServer(http.FS(img))))

	h.Router.With(corsHeaders, staticCache(24*time.Hour)).Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(h.StaticFS))))
}
