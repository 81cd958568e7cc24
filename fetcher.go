package webextract

import "context"

// FetchResult holds the outcome of a successful fetch.
type FetchResult struct {
	HTML        string
	StatusCode  int
	ContentType string

	// FinalURL is the URL after redirects, used as the response source.
	FinalURL string
}

// Fetcher retrieves HTML from URLs. Implementations hide HTTP details,
// header injection, and timeout handling. Non-2xx statuses and connection
// failures surface as EUPSTREAM errors (429 as ERATELIMITED); an abandoned
// fetch surfaces as ETIMEOUT.
type Fetcher interface {
	// Fetch retrieves the document at url. The context controls timeout
	// and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter throttles requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain,
	// or the context is canceled.
	Wait(ctx context.Context, domain string) error
}
