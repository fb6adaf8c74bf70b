package router

import (
	"github.com/gorilla/mux"

	"github.com/chatfeed-dev/chatfeed/frontend/internal/setup"
)

// New configures the web client's routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	h := deps.Handler

	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/messages", h.Send).Methods("POST")
	r.HandleFunc("/files", h.Upload).Methods("POST")
	r.HandleFunc("/older", h.Older).Methods("POST")
	r.HandleFunc("/favorite/{id}", h.ToggleFavorite).Methods("POST")
	r.HandleFunc("/pin/{id}", h.TogglePin).Methods("POST")

	return r
}
