package youtube

import (
	"Lighthouse/internal/api/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.YouTubeConfig{
		BaseURL: baseURL,
		ApiKey:  "test-key",
		Timeout: 5,
	})
}

func commentItemsJSON(count int, prefix string) string {
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, fmt.Sprintf(`{"snippet":{"topLevelComment":{"snippet":{
			"textDisplay":"%s-%d","authorDisplayName":"user","publishedAt":"2025-06-01T10:00:00Z","likeCount":%d}}}}`,
			prefix, i, i))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestSearchVideos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "acme review", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[{"id":{"videoId":"v1"}},{"id":{"videoId":"v2"}},{"id":{}}]}`)
	}))
	defer server.Close()

	videos, err := newTestClient(server.URL).SearchVideos(context.Background(), "acme", "review", 5)

	assert.Equal(t, nil, err)
	// 没有videoId的条目被丢弃
	assert.Equal(t, []string{"v1", "v2"}, videos)
}

func TestFetchComments_PaginatesUntilCap(t *testing.T) {
	var calls int
	var tokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/commentThreads", r.URL.Path)
		calls++
		tokens = append(tokens, r.URL.Query().Get("pageToken"))
		w.Header().Set("Content-Type", "application/json")

		// 每页100条并始终返回续页令牌，由调用方的上限截停
		fmt.Fprintf(w, `{"nextPageToken":"tok-%d","items":%s}`, calls, commentItemsJSON(100, "c"))
	}))
	defer server.Close()

	comments, err := newTestClient(server.URL).FetchComments(context.Background(), "v1", 250)

	assert.Equal(t, nil, err)
	assert.Equal(t, 250, len(comments))
	assert.Equal(t, 3, calls)
	// 首页不带令牌，后续页带上一页的令牌
	assert.Equal(t, []string{"", "tok-1", "tok-2"}, tokens)
	assert.Equal(t, "v1", comments[0].VideoID)
	assert.Equal(t, 2025, comments[0].PublishedAt.Year())
}

func TestFetchComments_StopsWithoutToken(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		// 不足一页且没有续页令牌，应当就此收尾
		fmt.Fprintf(w, `{"items":%s}`, commentItemsJSON(40, "c"))
	}))
	defer server.Close()

	comments, err := newTestClient(server.URL).FetchComments(context.Background(), "v1", 500)

	assert.Equal(t, nil, err)
	assert.Equal(t, 40, len(comments))
	assert.Equal(t, 1, calls)
}

func TestFetchComments_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchComments(context.Background(), "v1", 100)

	assert.Equal(t, true, errors.Is(err, ErrSourceUnavailable))
}
