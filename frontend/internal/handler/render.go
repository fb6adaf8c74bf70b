package handler

import (
	"fmt"
	"html/template"
	"time"

	"github.com/chatfeed-dev/chatfeed/frontend/internal/view"
	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

// ItemView is the template-facing model of one feed entry.
type ItemView struct {
	Id       string
	Type     domain.MessageType
	Body     template.HTML
	Time     string
	Favorite bool
}

// renderItem builds the per-variant markup. The switch covers the complete
// MessageType set; an unknown variant is a programming error surfaced at
// render time, never silently skipped.
func renderItem(item view.Item) (ItemView, error) {
	content := template.HTMLEscapeString(item.Content)
	filename := template.HTMLEscapeString(item.Filename)

	var body template.HTML
	switch item.Type {
	case domain.Text:
		body = template.HTML(content)
	case domain.Link:
		body = template.HTML(fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener">%s</a>`, content, content))
	case domain.Image:
		body = template.HTML(fmt.Sprintf(`<img src="%s" alt="%s">`, content, filename))
	case domain.Video:
		body = template.HTML(fmt.Sprintf(`<video controls src="%s"></video>`, content))
	case domain.Audio:
		body = template.HTML(fmt.Sprintf(`<audio controls src="%s"></audio>`, content))
	case domain.File:
		body = template.HTML(fmt.Sprintf(`<a href="%s" download>%s</a>`, content, filename))
	default:
		return ItemView{}, fmt.Errorf("unknown message type %q", item.Type)
	}

	return ItemView{
		Id:       item.Id,
		Type:     item.Type,
		Body:     body,
		Time:     time.UnixMilli(item.Timestamp).Format("15:04"),
		Favorite: item.Favorite,
	}, nil
}

func renderItems(items []view.Item) ([]ItemView, error) {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		iv, err := renderItem(item)
		if err != nil {
			return nil, err
		}
		views = append(views, iv)
	}
	return views, nil
}
