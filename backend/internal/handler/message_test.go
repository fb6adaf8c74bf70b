package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatfeed-dev/chatfeed/backend/internal/bot"
	"github.com/chatfeed-dev/chatfeed/backend/internal/service"
	"github.com/chatfeed-dev/chatfeed/backend/internal/storage/fs"
	"github.com/chatfeed-dev/chatfeed/backend/internal/store"
	"github.com/chatfeed-dev/chatfeed/shared/api"
	"github.com/chatfeed-dev/chatfeed/shared/config"
	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

// setupTestHandler wires a real store behind the handlers; message flow tests
// double as integration tests for the pagination contract.
func setupTestHandler(t *testing.T) (*store.Store, *mux.Router) {
	return setupTestHandlerWithUploadCap(t, 10<<20)
}

func setupTestHandlerWithUploadCap(t *testing.T, maxUploadBytes int64) (*store.Store, *mux.Router) {
	t.Helper()

	messageStore := store.New()
	files, err := fs.New(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Backend.PageLimit = 10
	cfg.Backend.MaxPageLimit = 50
	cfg.Backend.MaxUploadBytes = maxUploadBytes

	message := service.NewMessage(messageStore, bot.New(), cfg.Backend.PageLimit, cfg.Backend.MaxPageLimit)
	file := service.NewFile(files, messageStore)
	h := New(message, file, cfg)

	router := mux.NewRouter()
	router.HandleFunc("/api/messages", h.GetMessages).Methods(http.MethodGet)
	router.HandleFunc("/api/messages", h.CreateMessage).Methods(http.MethodPost)
	router.HandleFunc("/api/files", h.UploadFile).Methods(http.MethodPost)
	router.HandleFunc("/uploads/{filename}", h.DownloadUpload).Methods(http.MethodGet)

	return messageStore, router
}

func seedTimestamps(s *store.Store, timestamps ...int64) {
	for _, ts := range timestamps {
		s.Seed(domain.Message{Type: domain.Text, Content: "msg", Timestamp: ts})
	}
}

func getPage(t *testing.T, router *mux.Router, url string) []domain.Message {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var page []domain.Message
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	return page
}

func TestGetMessages(t *testing.T) {
	t.Run("two-page walk over a five message history", func(t *testing.T) {
		messageStore, router := setupTestHandler(t)
		seedTimestamps(messageStore, 100, 200, 300, 400, 500)

		first := getPage(t, router, "/api/messages?limit=2")
		require.Len(t, first, 2)
		assert.Equal(t, int64(500), first[0].Timestamp)
		assert.Equal(t, int64(400), first[1].Timestamp)

		second := getPage(t, router, "/api/messages?before=400&limit=2")
		require.Len(t, second, 2)
		assert.Equal(t, int64(300), second[0].Timestamp)
		assert.Equal(t, int64(200), second[1].Timestamp)
	})

	t.Run("empty store responds with an empty json array", func(t *testing.T) {
		_, router := setupTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("limit is capped server-side", func(t *testing.T) {
		messageStore, router := setupTestHandler(t)
		for i := int64(1); i <= 60; i++ {
			messageStore.Seed(domain.Message{Type: domain.Text, Content: "msg", Timestamp: i})
		}

		page := getPage(t, router, "/api/messages?limit=1000")
		assert.Len(t, page, 50)
	})

	t.Run("zero cursor yields an empty page under strictly-before semantics", func(t *testing.T) {
		messageStore, router := setupTestHandler(t)
		seedTimestamps(messageStore, 100, 200, 300)

		page := getPage(t, router, "/api/messages?before=0")
		assert.Empty(t, page)
	})

	t.Run("malformed before is rejected", func(t *testing.T) {
		_, router := setupTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/messages?before=yesterday", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed limit is rejected", func(t *testing.T) {
		_, router := setupTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/messages?limit=all", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCreateMessage(t *testing.T) {
	t.Run("creates a message and returns its id", func(t *testing.T) {
		messageStore, router := setupTestHandler(t)

		body := []byte(`{"content": "hello"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var created api.CreateMessageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, 1, messageStore.Len())
	})

	t.Run("link content is classified as link", func(t *testing.T) {
		messageStore, router := setupTestHandler(t)

		body := []byte(`{"content": "https://example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		page := messageStore.Query(store.NoBound, 1)
		require.Len(t, page, 1)
		assert.Equal(t, domain.Link, page[0].Type)
	})

	t.Run("bot command appends a reply that sorts after its trigger", func(t *testing.T) {
		messageStore, router := setupTestHandler(t)

		body := []byte(`{"content": "@chaos: weather"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		page := messageStore.Query(store.NoBound, 10)
		require.Len(t, page, 2)
		// Newest-first: the reply comes before the trigger
		assert.Equal(t, "Sunny today!", page[0].Content)
		assert.Equal(t, "@chaos: weather", page[1].Content)
		assert.Greater(t, page[0].Timestamp, page[1].Timestamp)
	})

	t.Run("missing content is rejected", func(t *testing.T) {
		_, router := setupTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString(`{}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Required fields missing")
	})

	t.Run("invalid json is rejected", func(t *testing.T) {
		_, router := setupTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString(`{invalid json::}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Body is invalid json")
	})
}
