package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/greenzone-vis/greenzone/pkg/cache"
	"github.com/greenzone-vis/greenzone/pkg/errors"
)

// DefaultTimeout bounds a single HTTP request, not the whole retry loop.
const DefaultTimeout = 30 * time.Second

// Fetcher downloads datasets over HTTP with retries and optional caching.
// The zero value is not usable; construct with [NewFetcher].
type Fetcher struct {
	client *http.Client
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithClient overrides the HTTP client (used by tests to point at a local
// server or stub transport).
func WithClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// WithCache enables caching of downloaded bytes with the given TTL.
func WithCache(c cache.Cache, ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.cache = c
		f.ttl = ttl
	}
}

// NewFetcher creates a Fetcher. Without options it performs uncached
// downloads with the default timeout.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: DefaultTimeout},
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads url and returns the body. Cached bytes are returned
// without touching the network; 5xx responses and transport errors are
// retried with exponential backoff, 4xx responses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := f.keyer.DatasetKey(url)
	if data, hit, err := f.cache.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		body, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	// A failed cache write is not a failed fetch.
	_ = f.cache.Set(ctx, key, body, f.ttl)
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "building request for %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetching %s", url)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "fetching %s: %s", url, resp.Status)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "fetching %s: %s", url, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.ErrCodeNetwork, "fetching %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "reading %s", url)}
	}
	return body, nil
}

// FetchString is Fetch with the body decoded as a string, for small text
// endpoints like last-updated timestamps.
func (f *Fetcher) FetchString(ctx context.Context, url string) (string, error) {
	body, err := f.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// String implements fmt.Stringer for logging.
func (f *Fetcher) String() string {
	return fmt.Sprintf("httputil.Fetcher(ttl=%s)", f.ttl)
}
