package http

import "github.com/gorilla/mux"

// NewRouter creates a router. Callers register handlers on it.
func NewRouter() *mux.Router {
	return mux.NewRouter()
}
