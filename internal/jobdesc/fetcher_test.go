package jobdesc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postingServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		switch r.URL.Path {
		case "/job":
			assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
			_, _ = w.Write([]byte("<html><body><div class=\"job-description\">" + posting(4) + "</div></body></html>"))
		case "/moved":
			http.Redirect(w, r, "/job", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcherFollowsRedirects(t *testing.T) {
	srv := postingServer(t, nil)

	text, err := NewFetcher(5*time.Second).Fetch(context.Background(), srv.URL+"/moved")
	require.NoError(t, err)
	assert.Contains(t, text, "Own the roadmap")
}

func TestFetcherFailures(t *testing.T) {
	srv := postingServer(t, nil)
	f := NewFetcher(5 * time.Second)

	tests := []struct {
		name string
		url  string
	}{
		{name: "not found", url: srv.URL + "/missing"},
		{name: "bad scheme", url: "ftp://example.com/job"},
		{name: "garbage", url: "::not a url"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), tt.url)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFetchFailed), "got %v", err)
		})
	}
}

func TestFetcherTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(slow.Close)

	_, err := NewFetcher(20*time.Millisecond).Fetch(context.Background(), slow.URL)
	assert.True(t, errors.Is(err, ErrFetchFailed), "got %v", err)
}

func TestCachedFetcherServesSecondCallFromRedis(t *testing.T) {
	var hits int32
	srv := postingServer(t, &hits)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cached := NewCachedFetcher(NewFetcher(5*time.Second), client, time.Hour)
	first, err := cached.Fetch(context.Background(), srv.URL+"/job")
	require.NoError(t, err)
	second, err := cached.Fetch(context.Background(), srv.URL+"/job")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.True(t, mr.Exists(CacheKey(srv.URL+"/job")))
	assert.Equal(t, time.Hour, mr.TTL(CacheKey(srv.URL+"/job")))
}

func TestCachedFetcherDoesNotCacheFailures(t *testing.T) {
	var hits int32
	srv := postingServer(t, &hits)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cached := NewCachedFetcher(NewFetcher(5*time.Second), client, time.Hour)
	for i := 0; i < 2; i++ {
		_, err := cached.Fetch(context.Background(), srv.URL+"/missing")
		require.Error(t, err)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestCachedFetcherBypassesBrokenRedis(t *testing.T) {
	srv := postingServer(t, nil)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	text, err := NewCachedFetcher(NewFetcher(5*time.Second), client, 0).Fetch(context.Background(), srv.URL+"/job")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
