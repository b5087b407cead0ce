package session

import (
	"net/http"

	"gitlite-api/pkg/httpjson"
)

type handler struct {
	service Service
}

func NewHandler(service Service) *handler {
	return &handler{
		service: service,
	}
}

func (h *handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/auth/github", h.redirect)
	mux.HandleFunc("GET /api/auth/github/callback", h.callback)
}

func (h *handler) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.service.AuthorizeUrl(), http.StatusFound)
}

func (h *handler) callback(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SignIn(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, result)
}
