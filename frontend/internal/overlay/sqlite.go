package overlay

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS favorites (
	message_id TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS pin (
	slot       INTEGER PRIMARY KEY CHECK (slot = 1),
	message_id TEXT NOT NULL,
	payload    TEXT NOT NULL
);
`

// SQLite is the sqlite-backed overlay store.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// Open creates or opens the overlay database at path and ensures the schema.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open overlay db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create overlay schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) ToggleFavorite(messageId string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM favorites WHERE message_id = ?`, messageId)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if removed > 0 {
		return false, nil
	}
	if _, err := s.db.Exec(`INSERT INTO favorites(message_id) VALUES (?)`, messageId); err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return true, nil
}

func (s *SQLite) Favorites() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT message_id FROM favorites`)
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	defer rows.Close()

	favorites := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		favorites[id] = struct{}{}
	}
	return favorites, rows.Err()
}

func (s *SQLite) TogglePin(msg domain.Message) (bool, error) {
	var currentId string
	err := s.db.QueryRow(`SELECT message_id FROM pin WHERE slot = 1`).Scan(&currentId)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to read pin: %w", err)
	}

	if currentId == msg.Id {
		if _, err := s.db.Exec(`DELETE FROM pin WHERE slot = 1`); err != nil {
			return false, fmt.Errorf("failed to unpin: %w", err)
		}
		return false, nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return false, fmt.Errorf("failed to encode pin payload: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO pin(slot, message_id, payload) VALUES (1, ?, ?)`,
		msg.Id, string(payload),
	)
	if err != nil {
		return false, fmt.Errorf("failed to pin: %w", err)
	}
	return true, nil
}

func (s *SQLite) Pinned() (*domain.Message, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM pin WHERE slot = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pin: %w", err)
	}

	var msg domain.Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return nil, fmt.Errorf("failed to decode pin payload: %w", err)
	}
	return &msg, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
