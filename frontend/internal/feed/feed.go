// Package feed owns the client-side message history: the ordered, deduplicated
// list of messages known to the client, the pagination cursor, and the
// reconciliation of fetched pages with locally-originated optimistic entries.
package feed

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chatfeed-dev/chatfeed/shared/api"
	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

// Fetcher retrieves one page of history, newest-first.
type Fetcher interface {
	GetMessages(before int64, limit int) ([]domain.Message, error)
}

// NoCursor is the cursor value before the first page has loaded.
const NoCursor = int64(math.MaxInt64)

// dedupWindowMillis bounds how far apart a fetched server message and a local
// optimistic one may be and still count as the same send. Server ids are
// unknown at send time, so reconciliation matches on type, content and
// timestamp proximity.
const dedupWindowMillis = 30_000

const localIdPrefix = "local-"

// State is the client's view of the feed: messages oldest-first, deduplicated
// by id, plus the cursor and exhaustion flag. Methods are not safe for
// concurrent use; callers serialize access (the session layer holds a lock).
type State struct {
	fetcher  Fetcher
	origin   string
	limit    int
	now      func() time.Time
	messages []domain.Message // oldest-first
	seen     map[string]struct{}
	localIds map[string]struct{}
	cursor   int64
	hasMore  bool
	loading  bool
	loaded   bool
}

func NewState(fetcher Fetcher, origin string, limit int) *State {
	return &State{
		fetcher:  fetcher,
		origin:   origin,
		limit:    limit,
		now:      time.Now,
		seen:     make(map[string]struct{}),
		localIds: make(map[string]struct{}),
		cursor:   NoCursor,
		hasMore:  true,
	}
}

// Messages returns the current history, oldest-first.
func (s *State) Messages() []domain.Message {
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *State) Cursor() int64 { return s.cursor }

// HasMore reports whether an older page may still exist.
func (s *State) HasMore() bool { return s.hasMore }

// Loaded reports whether the initial page has been fetched.
func (s *State) Loaded() bool { return s.loaded }

// Lookup finds a loaded message by id.
func (s *State) Lookup(id string) (domain.Message, bool) {
	if _, ok := s.seen[id]; !ok {
		return domain.Message{}, false
	}
	for _, msg := range s.messages {
		if msg.Id == id {
			return msg, true
		}
	}
	return domain.Message{}, false
}

// LoadInitial fetches the newest page. A concurrent load in flight drops the
// request; a fetch failure leaves the state untouched.
func (s *State) LoadInitial() error {
	if s.loading {
		return nil // single-flight: drop, don't queue
	}
	s.loading = true
	defer func() { s.loading = false }()

	page, err := s.fetcher.GetMessages(NoCursor, s.limit)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	s.mergePage(page)
	s.hasMore = len(page) == s.limit
	s.loaded = true
	return nil
}

// LoadOlder fetches the page before the current cursor and prepends it. The
// request is dropped when the history is already exhausted or another fetch is
// outstanding.
func (s *State) LoadOlder() error {
	if s.loading || !s.hasMore {
		return nil
	}
	s.loading = true
	defer func() { s.loading = false }()

	page, err := s.fetcher.GetMessages(s.cursor, s.limit)
	if err != nil {
		return fmt.Errorf("load older messages: %w", err)
	}

	s.mergePage(page)
	s.hasMore = len(page) == s.limit
	return nil
}

// AppendLocal inserts an optimistic text/link message before the network send
// resolves. The returned copy carries a client-assigned id; a later fetch of
// the server's persisted twin replaces it (see reconcileLocal).
func (s *State) AppendLocal(content string) domain.Message {
	msg := domain.Message{
		Id:        localIdPrefix + uuid.NewString(),
		Type:      domain.TypeOfText(content),
		Content:   content,
		Timestamp: s.now().UnixMilli(),
	}
	s.messages = append(s.messages, msg)
	s.seen[msg.Id] = struct{}{}
	s.localIds[msg.Id] = struct{}{}
	return msg
}

// AppendUpload inserts the optimistic message for a finished upload, built
// from the server's response (the artifact URL is unknown until then).
func (s *State) AppendUpload(uploaded api.UploadResponse) domain.Message {
	msg := domain.Message{
		Id:        localIdPrefix + uuid.NewString(),
		Type:      uploaded.Type,
		Content:   uploaded.Url,
		Timestamp: s.now().UnixMilli(),
		Filename:  uploaded.Filename,
	}
	rewriteContent(&msg, s.origin)
	s.messages = append(s.messages, msg)
	s.seen[msg.Id] = struct{}{}
	s.localIds[msg.Id] = struct{}{}
	return msg
}

// mergePage folds a fetched newest-first page into the oldest-first history:
// attachment URLs are rewritten, duplicates by id are skipped, optimistic
// entries contradicted by a persisted twin are replaced, and the cursor
// advances to the oldest timestamp seen.
func (s *State) mergePage(page []domain.Message) {
	changed := false
	for _, msg := range page {
		if _, dup := s.seen[msg.Id]; dup {
			continue
		}
		rewriteContent(&msg, s.origin)
		s.reconcileLocal(msg)

		s.messages = append(s.messages, msg)
		s.seen[msg.Id] = struct{}{}
		if msg.Timestamp < s.cursor {
			s.cursor = msg.Timestamp
		}
		changed = true
	}
	if changed {
		// Stable: equal timestamps keep their existing relative order.
		sort.SliceStable(s.messages, func(i, j int) bool {
			return s.messages[i].Timestamp < s.messages[j].Timestamp
		})
	}
}

// reconcileLocal drops a local optimistic entry that the incoming persisted
// message duplicates: same type and content, timestamps within the dedup
// window. Without this, the optimistic copy would reappear next to the
// server's on a re-fetch.
func (s *State) reconcileLocal(incoming domain.Message) {
	for i, msg := range s.messages {
		if _, local := s.localIds[msg.Id]; !local {
			continue
		}
		if msg.Type != incoming.Type || msg.Content != incoming.Content {
			continue
		}
		if abs(msg.Timestamp-incoming.Timestamp) > dedupWindowMillis {
			continue
		}
		s.messages = append(s.messages[:i], s.messages[i+1:]...)
		delete(s.seen, msg.Id)
		delete(s.localIds, msg.Id)
		return
	}
}

// rewriteContent turns a store-relative artifact path into an absolute URL
// against the API origin. Applied exactly once per message instance; an
// already-absolute URL is left untouched, so the rewrite is idempotent.
func rewriteContent(msg *domain.Message, origin string) {
	if !msg.Type.IsMedia() {
		return
	}
	if strings.HasPrefix(msg.Content, "/") {
		msg.Content = origin + msg.Content
	}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
