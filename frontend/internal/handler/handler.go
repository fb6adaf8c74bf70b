package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/chatfeed-dev/chatfeed/frontend/internal/apiclient"
	"github.com/chatfeed-dev/chatfeed/frontend/internal/overlay"
	"github.com/chatfeed-dev/chatfeed/frontend/internal/session"
	"github.com/chatfeed-dev/chatfeed/shared/logger"
)

type Handler struct {
	Templates map[string]*template.Template
	Sessions  *session.Registry
	APIClient *apiclient.APIClient
	Overlay   overlay.Store
}

func New(templates map[string]*template.Template, sessions *session.Registry, apiClient *apiclient.APIClient, overlayStore overlay.Store) *Handler {
	return &Handler{
		Templates: templates,
		Sessions:  sessions,
		APIClient: apiClient,
		Overlay:   overlayStore,
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, name string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}
