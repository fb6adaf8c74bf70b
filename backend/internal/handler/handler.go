package handler

import (
	"encoding/json"
	"net/http"

	"github.com/chatfeed-dev/chatfeed/backend/internal/service"
	"github.com/chatfeed-dev/chatfeed/shared/api"
	"github.com/chatfeed-dev/chatfeed/shared/config"
	"github.com/chatfeed-dev/chatfeed/shared/logger"
)

type Handler struct {
	message service.MessageService
	files   service.FileService
	cfg     *config.Config
}

func New(message service.MessageService, files service.FileService, cfg *config.Config) *Handler {
	return &Handler{message: message, files: files, cfg: cfg}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("error encoding response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: message})
}
