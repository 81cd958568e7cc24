// Package mock provides function-field mock implementations of the
// webextract interfaces for testing.
package mock

import (
	"context"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

var _ webextract.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webextract.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*webextract.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*webextract.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

var _ webextract.MarkdownExtractor = (*MarkdownExtractor)(nil)

// MarkdownExtractor is a mock implementation of webextract.MarkdownExtractor.
type MarkdownExtractor struct {
	ExtractMarkdownFn func(html string) (*webextract.MarkdownResult, error)
}

func (e *MarkdownExtractor) ExtractMarkdown(html string) (*webextract.MarkdownResult, error) {
	return e.ExtractMarkdownFn(html)
}

var _ webextract.TableExtractor = (*TableExtractor)(nil)

// TableExtractor is a mock implementation of webextract.TableExtractor.
type TableExtractor struct {
	ExtractTablesFn func(html string) ([]*webextract.TableRecord, error)
}

func (e *TableExtractor) ExtractTables(html string) ([]*webextract.TableRecord, error) {
	return e.ExtractTablesFn(html)
}

var _ webextract.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of webextract.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string, sourceURL string) (*webextract.Metadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string, sourceURL string) (*webextract.Metadata, error) {
	return e.ExtractMetadataFn(html, sourceURL)
}

var _ webextract.ExtractionWriter = (*ExtractionWriter)(nil)

// ExtractionWriter is a mock implementation of webextract.ExtractionWriter.
type ExtractionWriter struct {
	CreateExtractionFn func(ctx context.Context, extraction *webextract.Extraction) error
}

func (w *ExtractionWriter) CreateExtraction(ctx context.Context, extraction *webextract.Extraction) error {
	return w.CreateExtractionFn(ctx, extraction)
}

var _ webextract.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of webextract.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *webextract.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *webextract.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ webextract.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of webextract.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn != nil {
		return l.WaitFn(ctx, domain)
	}
	return nil
}
