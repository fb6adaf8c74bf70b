package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/chatfeed-dev/chatfeed/shared/api"
)

// UploadFile posts the file as a multipart body and returns the stored
// artifact's URL, classified type and filename.
func (c *APIClient) UploadFile(filename string, fileData io.Reader) (api.UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return api.UploadResponse{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, fileData); err != nil {
		return api.UploadResponse{}, fmt.Errorf("failed to read file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return api.UploadResponse{}, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	resp, err := c.do("POST", "/api/files", &buf, writer.FormDataContentType())
	if err != nil {
		return api.UploadResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return api.UploadResponse{}, fmt.Errorf("failed to upload file: %s", string(bodyBytes))
	}

	var uploaded api.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return api.UploadResponse{}, fmt.Errorf("failed to parse upload response JSON: %w", err)
	}
	return uploaded, nil
}
