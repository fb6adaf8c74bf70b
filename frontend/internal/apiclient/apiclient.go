package apiclient

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// APIClient handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

// New creates a new client for interacting with the backend.
func New(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HttpClient: &http.Client{},
	}
}

// Origin returns the scheme://host part of the base URL, used to rewrite
// store-relative attachment URLs into absolute ones.
func (c *APIClient) Origin() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" {
		return c.BaseURL
	}
	return u.Scheme + "://" + u.Host
}

// do is the single, unified helper for making API requests.
func (c *APIClient) do(method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}
