package api

import "github.com/chatfeed-dev/chatfeed/shared/domain"

// Request/response DTOs shared by backend handlers and the frontend apiclient

type CreateMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type CreateMessageResponse struct {
	Id string `json:"id"`
}

type UploadResponse struct {
	Url      string             `json:"url"`
	Type     domain.MessageType `json:"type"`
	Filename string             `json:"filename"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
