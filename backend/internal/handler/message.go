package handler

import (
	"net/http"
	"strconv"

	"github.com/chatfeed-dev/chatfeed/backend/internal/store"
	"github.com/chatfeed-dev/chatfeed/shared/api"
	"github.com/chatfeed-dev/chatfeed/shared/domain"
	"github.com/chatfeed-dev/chatfeed/shared/utils"
)

// GetMessages serves one page of history: up to `limit` messages with
// timestamp strictly before `before`, newest-first. Both parameters are
// optional; an absent cursor means "newest page".
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	before := store.NoBound
	if raw := r.URL.Query().Get("before"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid before: must be a unix-millisecond timestamp", http.StatusBadRequest)
			return
		}
		before = parsed
	}

	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid limit: must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	page, err := h.message.List(before, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if page == nil {
		page = []domain.Message{} // empty page encodes as [], not null
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var body api.CreateMessageRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	msg, err := h.message.Create(body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CreateMessageResponse{Id: msg.Id})
}
