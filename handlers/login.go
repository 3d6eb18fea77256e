package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/juho05/log"

	"github.com/dylanat/site/services"
)

const logoutHandler = "Logout"

type loginData struct {
	Action string
}

func newLoginData(returnURL string) loginData {
	action := LoginPath
	if returnURL != "" {
		action += "?" + url.Values{"returnUrl": {returnURL}}.Encode()
	}
	return loginData{
		Action: action,
	}
}

type loginRequest struct {
	Password  string `form:"password"`
	ReturnURL string `form:"returnUrl" validate:"omitempty,maxbytes=2048"`
}

// returnURL drops return URLs that fail validation instead of rejecting the request.
func (l loginRequest) returnURL() string {
	for _, f := range findInvalidFields(l) {
		if f.Name == "returnUrl" {
			log.Tracef("Ignoring return URL: failed %s rule", f.Rule)
			return ""
		}
	}
	return l.ReturnURL
}

// GET /Admin/Login
func (h *Handler) adminLoginPage(w http.ResponseWriter, r *http.Request) {
	body, err := decodeForm[loginRequest](r)
	if err != nil {
		badRequest(w)
		return
	}
	returnURL := body.returnURL()

	if h.AuthService.Authenticated(r.Context()) {
		http.Redirect(w, r, SafeReturnPath(returnURL), http.StatusFound)
		return
	}

	h.Renderer.render(w, http.StatusOK, "login", h.newTemplateDataWithData(r, newLoginData(returnURL)))
}

// POST /Admin/Login
// POST /Admin/Login?handler=Logout
func (h *Handler) adminLoginPost(w http.ResponseWriter, r *http.Request) {
	if strings.EqualFold(r.URL.Query().Get("handler"), logoutHandler) {
		h.adminLogout(w, r)
		return
	}

	body, err := decodeForm[loginRequest](r)
	if err != nil {
		badRequest(w)
		return
	}
	returnURL := body.returnURL()

	err = h.AuthService.Login(r.Context(), body.Password)
	if err != nil {
		data := h.newTemplateDataWithData(r, newLoginData(returnURL))
		switch {
		case errors.Is(err, services.ErrNotConfigured):
			data.Errors = []string{"Admin auth is not configured."}
		case errors.Is(err, services.ErrInvalidCredentials):
			data.Errors = []string{"Invalid password."}
		default:
			serverError(w, err)
			return
		}
		h.Renderer.render(w, http.StatusOK, "login", data)
		return
	}

	http.Redirect(w, r, SafeReturnPath(returnURL), http.StatusSeeOther)
}

func (h *Handler) adminLogout(w http.ResponseWriter, r *http.Request) {
	err := h.AuthService.Logout(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}
