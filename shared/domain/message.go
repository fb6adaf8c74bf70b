package domain

import "strings"

// MessageType classifies a message by its content. Text messages are
// classified at creation from the content shape, uploads from the MIME type.
type MessageType string

const (
	Text  MessageType = "text"
	Link  MessageType = "link"
	Image MessageType = "image"
	Video MessageType = "video"
	Audio MessageType = "audio"
	File  MessageType = "file"
)

func (t MessageType) Valid() bool {
	switch t {
	case Text, Link, Image, Video, Audio, File:
		return true
	}
	return false
}

// IsMedia reports whether messages of this type carry a stored artifact
// reference in Content instead of literal text.
func (t MessageType) IsMedia() bool {
	switch t {
	case Image, Video, Audio, File:
		return true
	}
	return false
}

// Message is an immutable feed entry. For text/link messages Content holds the
// literal text; for media messages it holds a retrievable URL of the stored
// artifact. Timestamp is Unix milliseconds, assigned monotonically by the
// store.
type Message struct {
	Id        string      `json:"id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Timestamp int64       `json:"timestamp"`
	Filename  string      `json:"filename,omitempty"`
}

// TypeOfText classifies literal text: URLs become link messages.
func TypeOfText(content string) MessageType {
	if strings.HasPrefix(content, "http://") || strings.HasPrefix(content, "https://") {
		return Link
	}
	return Text
}

// TypeOfMIME classifies an upload from its MIME type.
func TypeOfMIME(mimeType string) MessageType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return Image
	case strings.HasPrefix(mimeType, "video/"):
		return Video
	case strings.HasPrefix(mimeType, "audio/"):
		return Audio
	}
	return File
}
