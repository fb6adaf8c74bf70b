package apiclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatfeed-dev/chatfeed/shared/api"
	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

func TestOrigin(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"plain host", "http://localhost:3001", "http://localhost:3001"},
		{"base url with path", "https://api.example.com/v1", "https://api.example.com"},
		{"unparsable falls back to base url", "not a url", "not a url"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, New(tc.baseURL).Origin())
		})
	}
}

func TestGetMessages(t *testing.T) {
	t.Run("passes cursor and limit as query params", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			json.NewEncoder(w).Encode([]domain.Message{{Id: "m1", Type: domain.Text, Content: "hi", Timestamp: 100}})
		}))
		defer server.Close()

		page, err := New(server.URL).GetMessages(400, 2)

		require.NoError(t, err)
		assert.Equal(t, "limit=2&before=400", gotQuery)
		require.Len(t, page, 1)
		assert.Equal(t, "m1", page[0].Id)
	})

	t.Run("omits before for the newest page", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Write([]byte("[]"))
		}))
		defer server.Close()

		_, err := New(server.URL).GetMessages(0, 10)

		require.NoError(t, err)
		assert.Equal(t, "limit=10", gotQuery)
	})

	t.Run("non-200 surfaces the response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := New(server.URL).GetMessages(0, 10)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("unreachable backend returns an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := New(server.URL).GetMessages(0, 10)

		assert.Error(t, err)
	})
}

func TestSendMessage(t *testing.T) {
	t.Run("posts json and returns the created id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/messages", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req api.CreateMessageRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "hello", req.Content)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(api.CreateMessageResponse{Id: "srv-1"})
		}))
		defer server.Close()

		id, err := New(server.URL).SendMessage("hello")

		require.NoError(t, err)
		assert.Equal(t, "srv-1", id)
	})

	t.Run("rejection surfaces the error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": "Content required"}`, http.StatusBadRequest)
		}))
		defer server.Close()

		_, err := New(server.URL).SendMessage("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Content required")
	})
}

func TestUploadFile(t *testing.T) {
	t.Run("posts multipart body under the file field", func(t *testing.T) {
		content := []byte("png bytes")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()

			assert.Equal(t, "cat.png", header.Filename)
			got, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, content, got)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(api.UploadResponse{Url: "/uploads/abc.png", Type: domain.Image, Filename: "cat.png"})
		}))
		defer server.Close()

		uploaded, err := New(server.URL).UploadFile("cat.png", bytes.NewReader(content))

		require.NoError(t, err)
		assert.Equal(t, "/uploads/abc.png", uploaded.Url)
		assert.Equal(t, domain.Image, uploaded.Type)
		assert.Equal(t, "cat.png", uploaded.Filename)
	})

	t.Run("non-201 surfaces the error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too large", http.StatusBadRequest)
		}))
		defer server.Close()

		_, err := New(server.URL).UploadFile("big.bin", bytes.NewReader([]byte("x")))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})
}
