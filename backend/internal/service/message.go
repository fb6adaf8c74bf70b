package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	internal_errors "github.com/chatfeed-dev/chatfeed/shared/errors"

	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

type MessageService interface {
	Create(content string) (domain.Message, error)
	List(before int64, limit int) ([]domain.Message, error)
}

type MessageStore interface {
	Append(msg domain.Message) domain.Message
	Query(before int64, limit int) []domain.Message
}

type Responder interface {
	Reply(content string) (string, bool)
}

type Message struct {
	store        MessageStore
	bot          Responder
	policy       *bluemonday.Policy
	pageLimit    int
	maxPageLimit int
}

func NewMessage(store MessageStore, bot Responder, pageLimit, maxPageLimit int) MessageService {
	return &Message{
		store:        store,
		bot:          bot,
		policy:       bluemonday.StrictPolicy(),
		pageLimit:    pageLimit,
		maxPageLimit: maxPageLimit,
	}
}

// Create sanitizes and classifies the text, appends it, and appends the bot
// reply when the content carries the command prefix. The reply is appended
// after the trigger, so the store's monotonic timestamps guarantee it never
// sorts before it.
func (m *Message) Create(content string) (domain.Message, error) {
	sanitized := strings.TrimSpace(m.policy.Sanitize(content))
	if sanitized == "" {
		return domain.Message{}, &internal_errors.ErrorWithStatusCode{Message: "Content required", StatusCode: 400}
	}

	msg := m.store.Append(domain.Message{
		Type:    domain.TypeOfText(sanitized),
		Content: sanitized,
	})

	if response, ok := m.bot.Reply(sanitized); ok {
		m.store.Append(domain.Message{
			Type:    domain.Text,
			Content: response,
		})
	}

	return msg, nil
}

// List returns one page, newest-first. The cursor passes through to the store
// untouched (strictly-before semantics, so a zero cursor yields an empty
// page); a non-positive limit falls back to the default page size. The
// client-supplied limit is capped so a single request can never drain the
// whole history.
func (m *Message) List(before int64, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = m.pageLimit
	}
	if limit > m.maxPageLimit {
		limit = m.maxPageLimit
	}
	return m.store.Query(before, limit), nil
}
