package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chatfeed-dev/chatfeed/backend/internal/setup"
	"github.com/chatfeed-dev/chatfeed/shared/middleware/metrics"
)

// New creates and configures the API router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	// CORS for the browser client
	r.Use(handlers.CORS(
		handlers.AllowedOrigins(deps.Config.Backend.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	))

	r.Use(metrics.Middleware)

	// Add a wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler

	r.HandleFunc("/api/messages", h.GetMessages).Methods("GET")
	r.HandleFunc("/api/messages", h.CreateMessage).Methods("POST")
	r.HandleFunc("/api/files", h.UploadFile).Methods("POST")
	r.HandleFunc("/uploads/{filename}", h.DownloadUpload).Methods("GET")

	r.HandleFunc("/healthcheck", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
