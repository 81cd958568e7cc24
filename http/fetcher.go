// Package http provides the HTTP implementations of the webextract fetch
// and sitemap collaborators.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements webextract.Fetcher at compile time.
var _ webextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML from URLs over plain HTTP. It does not execute
// JavaScript; pages that only materialize under a browser come back as
// their server-rendered form.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	headers map[string]string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHeaders sets extra request headers sent with every fetch.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		for k, v := range headers {
			f.headers[k] = v
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		headers: map[string]string{},
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the document at url. Non-2xx statuses surface as
// EUPSTREAM (429 as ERATELIMITED); timeouts as ETIMEOUT.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*webextract.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, webextract.Errorf(webextract.EINVALID, "invalid URL %q: %v", url, err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, webextract.Errorf(webextract.ETIMEOUT, "fetch of %s timed out", url)
		}
		return nil, webextract.Errorf(webextract.EUPSTREAM, "fetch of %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, webextract.Errorf(webextract.ERATELIMITED, "HTTP 429 for %s", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, webextract.Errorf(webextract.EUPSTREAM, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, webextract.Errorf(webextract.EUPSTREAM, "reading body of %s: %v", url, err)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &webextract.FetchResult{
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    finalURL,
	}, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
