package handlers

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/dylanat/site/services"
)

type Handler struct {
	Router         chi.Router
	SessionManager *scs.SessionManager
	AuthService    services.AuthService
	Renderer       Renderer
	StaticFS       fs.FS
	BehindProxy    bool
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func NewHandler() *Handler {
	return &Handler{
		Now: time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Router.ServeHTTP(w, r)
}
