package setup

import (
	"time"

	"github.com/chatfeed-dev/chatfeed/backend/internal/bot"
	"github.com/chatfeed-dev/chatfeed/backend/internal/handler"
	"github.com/chatfeed-dev/chatfeed/backend/internal/service"
	"github.com/chatfeed-dev/chatfeed/backend/internal/storage/fs"
	"github.com/chatfeed-dev/chatfeed/backend/internal/store"
	"github.com/chatfeed-dev/chatfeed/shared/config"
	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Store   *store.Store
	Handler *handler.Handler
	Config  *config.Config
}

// SetupDependencies initializes everything the API server needs.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	messageStore := store.New()
	seedDemoMessages(messageStore)

	files, err := fs.New(cfg.Backend.UploadDir)
	if err != nil {
		return nil, err
	}

	responder := bot.New()
	message := service.NewMessage(messageStore, responder, cfg.Backend.PageLimit, cfg.Backend.MaxPageLimit)
	file := service.NewFile(files, messageStore)

	h := handler.New(message, file, cfg)

	return &Dependencies{
		Store:   messageStore,
		Handler: h,
		Config:  cfg,
	}, nil
}

// seedDemoMessages installs the two demo entries a fresh server starts with.
func seedDemoMessages(s *store.Store) {
	now := time.Now().UnixMilli()
	s.Seed(
		domain.Message{
			Type:      domain.Text,
			Content:   "Hi! This is a demo message.",
			Timestamp: now - 60_000,
		},
		domain.Message{
			Type:      domain.Link,
			Content:   "https://example.com",
			Timestamp: now - 30_000,
		},
	)
}
