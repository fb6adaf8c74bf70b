package setup

import (
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"

	"github.com/chatfeed-dev/chatfeed/frontend/internal/apiclient"
	"github.com/chatfeed-dev/chatfeed/frontend/internal/feed"
	"github.com/chatfeed-dev/chatfeed/frontend/internal/handler"
	"github.com/chatfeed-dev/chatfeed/frontend/internal/overlay"
	"github.com/chatfeed-dev/chatfeed/frontend/internal/session"
	"github.com/chatfeed-dev/chatfeed/shared/config"
)

const baseTemplate = "base.html"

type Dependencies struct {
	Handler *handler.Handler
	Overlay overlay.Store
	Config  *config.Config
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	templates, err := loadTemplates(cfg.Frontend.TemplatesDir)
	if err != nil {
		return nil, err
	}

	apiClient := apiclient.New(cfg.Frontend.APIBaseURL)

	overlayStore, err := overlay.Open(cfg.Frontend.OverlayDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open overlay store: %w", err)
	}

	sessions := session.NewRegistry(func() *feed.State {
		return feed.NewState(apiClient, apiClient.Origin(), cfg.Backend.PageLimit)
	})

	h := handler.New(templates, sessions, apiClient, overlayStore)

	return &Dependencies{
		Handler: h,
		Overlay: overlayStore,
		Config:  cfg,
	}, nil
}

func loadTemplates(tmplPath string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates dir: %w", err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) != ".html" || f.Name() == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).ParseFiles(
			path.Join(tmplPath, baseTemplate),
			path.Join(tmplPath, f.Name()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", f.Name(), err)
		}
		templates[f.Name()] = tmpl
	}
	return templates, nil
}
