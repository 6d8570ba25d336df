package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpulse/newsharvest/internal/logger"
)

func cryptoPanicTestConfig(baseURL string) CryptoPanicConfig {
	return CryptoPanicConfig{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Currencies: []string{"BTC", "ETH"},
		Window: Window{
			Start: day(2024, time.November, 1),
			End:   day(2025, time.November, 1),
		},
	}
}

func postJSON(id int, publishedAt, title string) string {
	return fmt.Sprintf(`{"id":%d,"title":%q,"url":"https://cp.example/%d","published_at":%q,"source":{"title":"Feed"},"votes":{"positive":1,"negative":0}}`,
		id, title, id, publishedAt)
}

func TestCryptoPanicFetchPaginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("auth_token"))
		assert.Equal(t, "BTC,ETH", q.Get("currencies"))
		assert.Equal(t, "true", q.Get("public"))

		switch q.Get("page") {
		case "1":
			fmt.Fprintf(w, `{"results":[%s,%s],"next":"page=2"}`,
				postJSON(1, "2025-01-10T12:00:00Z", "BTC news"),
				postJSON(2, "2025-01-09T12:00:00Z", "ETH news"))
		case "2":
			fmt.Fprintf(w, `{"results":[%s],"next":null}`,
				postJSON(3, "2024-12-01T12:00:00Z", "More BTC news"))
		default:
			t.Errorf("unexpected page %q", q.Get("page"))
		}
	}))
	defer srv.Close()

	c := NewCryptoPanic(nil, logger.NopLogger{})
	posts, err := c.Fetch(context.Background(), cryptoPanicTestConfig(srv.URL))

	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, int64(3), posts[2].ID)
}

func TestCryptoPanicFetchStopsAtOlderPost(t *testing.T) {
	var pages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		fmt.Fprintf(w, `{"results":[%s,%s,%s],"next":"page=2"}`,
			postJSON(1, "2024-11-02T00:00:00Z", "in range"),
			postJSON(2, "2024-10-30T00:00:00Z", "before start"),
			postJSON(3, "2024-11-03T00:00:00Z", "never reached"))
	}))
	defer srv.Close()

	c := NewCryptoPanic(nil, logger.NopLogger{})
	posts, err := c.Fetch(context.Background(), cryptoPanicTestConfig(srv.URL))

	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(1), posts[0].ID)
}

func TestCryptoPanicFetchProbesPastNullNext(t *testing.T) {
	var pages []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		if page == "3" {
			fmt.Fprintf(w, `{"results":[%s],"next":null}`,
				postJSON(9, "2025-02-01T00:00:00Z", "found late"))
			return
		}
		// Posts after the window end with a bogus null next.
		fmt.Fprintf(w, `{"results":[%s],"next":null}`,
			postJSON(8, "2025-12-01T00:00:00Z", "too new"))
	}))
	defer srv.Close()

	c := NewCryptoPanic(nil, logger.NopLogger{})
	posts, err := c.Fetch(context.Background(), cryptoPanicTestConfig(srv.URL))

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, pages)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(9), posts[0].ID)
}

func TestCryptoPanicFetchReturnsPartialOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprintf(w, `{"results":[%s],"next":"page=2"}`,
				postJSON(1, "2025-01-10T00:00:00Z", "ok"))
			return
		}
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewCryptoPanic(nil, logger.NopLogger{})
	posts, err := c.Fetch(context.Background(), cryptoPanicTestConfig(srv.URL))

	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestCryptoPanicFetchStopsWhenPagePredatesWindow(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"results":[%s],"next":"page=%d"}`,
			postJSON(calls, "2024-01-01", "old"), calls+1)
	}))
	defer srv.Close()

	c := NewCryptoPanic(nil, logger.NopLogger{})
	posts, err := c.Fetch(context.Background(), cryptoPanicTestConfig(srv.URL))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, posts)
}

func TestCryptoPanicFetchRequiresAPIKey(t *testing.T) {
	cfg := cryptoPanicTestConfig("http://unused.invalid")
	cfg.APIKey = " "

	c := NewCryptoPanic(nil, logger.NopLogger{})
	_, err := c.Fetch(context.Background(), cfg)
	assert.ErrorContains(t, err, "api key")
}

func TestDecodePostsShapes(t *testing.T) {
	posts, hasNext, err := decodePosts([]byte(`{"results":[{"id":1,"title":"a","url":"u"}],"next":"x"}`))
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.True(t, hasNext)

	posts, hasNext, err = decodePosts([]byte(`{"data":[{"id":2,"title":"b","url":"u"}],"next":null}`))
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.False(t, hasNext)

	posts, hasNext, err = decodePosts([]byte(`[{"id":3,"title":"c","url":"u"}]`))
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.False(t, hasNext)

	_, _, err = decodePosts([]byte(`{oops`))
	assert.Error(t, err)
}
