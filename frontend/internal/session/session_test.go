package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatfeed-dev/chatfeed/frontend/internal/feed"
	"github.com/chatfeed-dev/chatfeed/frontend/internal/view"
	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

type noopFetcher struct{}

func (noopFetcher) GetMessages(before int64, limit int) ([]domain.Message, error) {
	return nil, nil
}

func newTestRegistry() *Registry {
	return NewRegistry(func() *feed.State {
		return feed.NewState(noopFetcher{}, "http://localhost:3001", 10)
	})
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	return nil
}

func TestRegistryGet(t *testing.T) {
	t.Run("first contact creates a session and sets the cookie", func(t *testing.T) {
		registry := newTestRegistry()
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		sess := registry.Get(rr, req)

		require.NotNil(t, sess)
		require.NotNil(t, sess.Feed)
		assert.Equal(t, view.FilterAll, sess.Filter)

		cookie := sessionCookie(rr)
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("replaying the cookie returns the same session", func(t *testing.T) {
		registry := newTestRegistry()
		rr := httptest.NewRecorder()
		first := registry.Get(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		cookie := sessionCookie(rr)
		require.NotNil(t, cookie)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		second := registry.Get(httptest.NewRecorder(), req)

		assert.Same(t, first, second)
	})

	t.Run("different browsers get different sessions", func(t *testing.T) {
		registry := newTestRegistry()

		first := registry.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		second := registry.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotSame(t, first, second)
	})

	t.Run("unknown cookie value revives under the same id", func(t *testing.T) {
		registry := newTestRegistry()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale-id"})

		first := registry.Get(httptest.NewRecorder(), req)
		second := registry.Get(httptest.NewRecorder(), req)

		assert.Same(t, first, second)
	})
}

func TestFlash(t *testing.T) {
	sess := &Session{}

	sess.SetFlash("backend unavailable")

	assert.Equal(t, "backend unavailable", sess.TakeFlash())
	assert.Empty(t, sess.TakeFlash())
}
