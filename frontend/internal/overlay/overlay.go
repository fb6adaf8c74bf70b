// Package overlay persists user-local message annotations: the favorite set
// and the single pinned message. The overlay lives entirely on the client and
// is never synchronized with the server; it must survive restarts, so the pin
// keeps the full message payload and stays displayable even when its message
// falls outside the loaded window.
package overlay

import "github.com/chatfeed-dev/chatfeed/shared/domain"

type Store interface {
	// ToggleFavorite flips the favorite flag and reports the new state.
	ToggleFavorite(messageId string) (bool, error)
	Favorites() (map[string]struct{}, error)

	// TogglePin pins the message, replacing any current pin; pinning the
	// already-pinned message unpins it. Reports whether the message is now
	// pinned.
	TogglePin(msg domain.Message) (bool, error)
	// Pinned returns the pinned message, or nil when nothing is pinned.
	Pinned() (*domain.Message, error)

	Close() error
}
