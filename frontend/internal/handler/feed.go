package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chatfeed-dev/chatfeed/frontend/internal/view"
	"github.com/chatfeed-dev/chatfeed/shared/logger"
)

// FeedPage is the template data for the feed view.
type FeedPage struct {
	Items   []ItemView
	Pinned  *ItemView
	Filter  string
	Query   string
	HasMore bool
	Error   string
}

// Index renders the feed. The first visit triggers the initial page load;
// `filter` and `q` query params update the session's view predicates without
// touching the loaded history.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	params := r.URL.Query()
	if params.Has("filter") {
		sess.Filter = params.Get("filter")
		if sess.Filter == "" {
			sess.Filter = view.FilterAll
		}
	}
	if params.Has("q") {
		sess.Query = params.Get("q")
	}

	if !sess.Feed.Loaded() {
		if err := sess.Feed.LoadInitial(); err != nil {
			logger.Log.Error("initial load failed", "error", err)
			sess.SetFlash("Could not load messages")
		}
	}

	favorites, err := h.Overlay.Favorites()
	if err != nil {
		logger.Log.Error("reading favorites failed", "error", err)
		favorites = map[string]struct{}{}
	}
	pinned, err := h.Overlay.Pinned()
	if err != nil {
		logger.Log.Error("reading pin failed", "error", err)
	}

	projection := view.Project(sess.Feed.Messages(), sess.Filter, sess.Query, favorites, pinned)

	items, err := renderItems(projection.Items)
	if err != nil {
		logger.Log.Error("rendering feed failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	page := FeedPage{
		Items:   items,
		Filter:  sess.Filter,
		Query:   sess.Query,
		HasMore: sess.Feed.HasMore(),
		Error:   sess.TakeFlash(),
	}
	if projection.Pinned != nil {
		iv, err := renderItem(*projection.Pinned)
		if err != nil {
			logger.Log.Error("rendering pin failed", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		page.Pinned = &iv
	}

	h.renderTemplate(w, "feed.html", page)
}

// Send appends the optimistic message first and only then performs the API
// call; a failed send keeps the optimistic entry and surfaces a banner.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	content := r.FormValue("content")
	if content == "" {
		sess.SetFlash("Message text is required")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess.Feed.AppendLocal(content)

	if _, err := h.APIClient.SendMessage(content); err != nil {
		logger.Log.Error("send failed", "error", err)
		sess.SetFlash("Could not send message")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Upload forwards the file to the API and appends the local message from the
// server's response; the artifact reference is unknown before it resolves.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	file, header, err := r.FormFile("file")
	if err != nil {
		sess.SetFlash("Choose a file to upload")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	uploaded, err := h.APIClient.UploadFile(header.Filename, file)
	if err != nil {
		logger.Log.Error("upload failed", "filename", header.Filename, "error", err)
		sess.SetFlash("Could not upload file")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess.Feed.AppendUpload(uploaded)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Older loads the previous page (infinite scroll's "reached the top").
func (h *Handler) Older(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	if err := sess.Feed.LoadOlder(); err != nil {
		logger.Log.Error("older page load failed", "error", err)
		sess.SetFlash("Could not load older messages")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	id := mux.Vars(r)["id"]
	if _, err := h.Overlay.ToggleFavorite(id); err != nil {
		logger.Log.Error("favorite toggle failed", "id", id, "error", err)
		sess.SetFlash("Could not update favorite")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// TogglePin pins a currently-loaded message, storing its full payload so the
// pin stays displayable after the message scrolls out of the loaded window.
func (h *Handler) TogglePin(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	id := mux.Vars(r)["id"]
	msg, ok := sess.Feed.Lookup(id)
	if !ok {
		sess.SetFlash("Message is no longer loaded")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if _, err := h.Overlay.TogglePin(msg); err != nil {
		logger.Log.Error("pin toggle failed", "id", id, "error", err)
		sess.SetFlash("Could not update pin")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
