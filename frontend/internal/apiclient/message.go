package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/chatfeed-dev/chatfeed/shared/api"
	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

// GetMessages fetches one page of history, newest-first. A before of
// math.MaxInt64 (or non-positive) requests the newest page.
func (c *APIClient) GetMessages(before int64, limit int) ([]domain.Message, error) {
	path := fmt.Sprintf("/api/messages?limit=%d", limit)
	if before > 0 && before != math.MaxInt64 {
		path += fmt.Sprintf("&before=%d", before)
	}

	resp, err := c.do("GET", path, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get messages: %s", string(bodyBytes))
	}

	var page []domain.Message
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to parse messages JSON: %w", err)
	}
	return page, nil
}

// SendMessage posts a new text message and returns the server-assigned id.
func (c *APIClient) SendMessage(content string) (string, error) {
	body, err := json.Marshal(api.CreateMessageRequest{Content: content})
	if err != nil {
		return "", fmt.Errorf("failed to encode message: %w", err)
	}

	resp, err := c.do("POST", "/api/messages", bytes.NewReader(body), "application/json")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to send message: %s", string(bodyBytes))
	}

	var created api.CreateMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to parse response JSON: %w", err)
	}
	return created.Id, nil
}
