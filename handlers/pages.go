package handlers

import (
	"net/http"
	"time"
)

// GET /
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	type data struct {
		UTC string
	}
	h.Renderer.render(w, http.StatusOK, "index", h.newTemplateDataWithData(r, data{
		UTC: h.Now().UTC().Format(time.DateOnly),
	}))
}

// GET /Admin
func (h *Handler) adminIndex(w http.ResponseWriter, r *http.Request) {
	type data struct {
		Username string
	}
	h.Renderer.render(w, http.StatusOK, "admin", h.newTemplateDataWithData(r, data{
		Username: h.AuthService.DisplayName(r.Context()),
	}))
}
