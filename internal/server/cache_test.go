package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/pitchgraph/internal/config"
	"github.com/f3rmion/pitchgraph/internal/kana"
	"github.com/f3rmion/pitchgraph/internal/logger"
	"github.com/f3rmion/pitchgraph/internal/server"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key, svg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = svg
	m.sets++
	return nil
}

func TestCacheKey(t *testing.T) {
	style := config.DefaultStyle()
	a := server.CacheKey(style, "ねこ:1")
	assert.Equal(t, a, server.CacheKey(style, "ねこ:1"))
	assert.NotEqual(t, a, server.CacheKey(style, "ねこ:0"))

	style.NoText = true
	assert.NotEqual(t, a, server.CacheKey(style, "ねこ:1"))

	style = config.DefaultStyle()
	style.ConvertReading = kana.ModeHiragana
	assert.NotEqual(t, a, server.CacheKey(style, "ねこ:1"))
}

func TestRenderSVGUsesCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cache := &memoryCache{data: map[string]string{}}
	router := server.NewRouter(config.DefaultStyle(), logger.Nop(), server.WithCache(cache))

	target := "/api/render.svg?text=" + url.QueryEscape("ねこ:1")
	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	first := get()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Cache"))
	assert.Equal(t, 1, cache.sets)

	second := get()
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, cache.sets)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := server.NewRouter(config.DefaultStyle(), logger.Nop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Len(t, w.Header().Get("X-Request-Id"), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set("X-Request-Id", "abc")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-Id"))
}

func TestNewRedisCacheRequiresAddress(t *testing.T) {
	_, err := server.NewRedisCache(" ", 0, logger.Nop())
	assert.Error(t, err)
}
