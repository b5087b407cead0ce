package internal

import "net/http"

type GlobalHandler interface {
	RegisterRoutes(mux *http.ServeMux)
}
