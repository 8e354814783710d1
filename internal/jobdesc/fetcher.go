// Package jobdesc downloads job postings and extracts their description text.
package jobdesc

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"resume-optimizer/internal/shared/metrics"
)

const (
	DefaultTimeout = 30 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	maxBodyBytes   = 5 << 20
)

// Source returns the description text of the posting at a URL.
type Source interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Fetcher downloads postings over HTTP.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher builds a Fetcher with the given client timeout. Redirects follow
// the net/http default of ten hops.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{Client: &http.Client{Timeout: timeout}}
}

// Fetch downloads rawURL and extracts the posting text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	text, err := f.fetch(ctx, rawURL)
	switch {
	case err == nil:
		metrics.IncFetch("ok")
	case errors.Is(err, ErrTooShort):
		metrics.IncFetch("too_short")
	default:
		metrics.IncFetch("failed")
	}
	return text, err
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.Wrapf(ErrFetchFailed, "invalid url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", errors.Wrap(ErrFetchFailed, err.Error())
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrap(ErrFetchFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Wrapf(ErrFetchFailed, "status %d", resp.StatusCode)
	}
	return Extract(io.LimitReader(resp.Body, maxBodyBytes))
}
