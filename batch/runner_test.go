package batch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
	"github.com/BUZDOLAPCI/webpage-extract/batch"
	"github.com/BUZDOLAPCI/webpage-extract/mock"
)

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts and stores every URL", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*webextract.FetchResult, error) {
				return &webextract.FetchResult{HTML: "<main><p>hello</p></main>", FinalURL: url}, nil
			},
		}
		markdown := &mock.MarkdownExtractor{
			ExtractMarkdownFn: func(html string) (*webextract.MarkdownResult, error) {
				return &webextract.MarkdownResult{Markdown: "hello", WordCount: 1}, nil
			},
		}

		var mu sync.Mutex
		var stored []*webextract.Extraction
		writer := &mock.ExtractionWriter{
			CreateExtractionFn: func(ctx context.Context, e *webextract.Extraction) error {
				mu.Lock()
				defer mu.Unlock()
				stored = append(stored, e)
				return nil
			},
		}

		runner := &batch.Runner{
			Fetcher:  fetcher,
			Markdown: markdown,
			Writers:  []webextract.ExtractionWriter{writer},
		}

		result, err := runner.Run(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/c",
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Saved)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, 0, result.Skipped)
		assert.NotEmpty(t, result.RunID)
		assert.Len(t, stored, 3)
	})

	t.Run("deduplicates repeated URLs", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		fetched := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*webextract.FetchResult, error) {
				mu.Lock()
				fetched++
				mu.Unlock()
				return &webextract.FetchResult{HTML: "<p>x</p>", FinalURL: url}, nil
			},
		}
		markdown := &mock.MarkdownExtractor{
			ExtractMarkdownFn: func(html string) (*webextract.MarkdownResult, error) {
				return &webextract.MarkdownResult{Markdown: "x", WordCount: 1}, nil
			},
		}

		runner := &batch.Runner{Fetcher: fetcher, Markdown: markdown}

		result, err := runner.Run(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/a",
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 2, result.Skipped)
		assert.Equal(t, 2, fetched)
	})

	t.Run("one failing URL does not abort the run", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*webextract.FetchResult, error) {
				if url == "https://example.com/bad" {
					return nil, webextract.Errorf(webextract.EUPSTREAM, "fetch of %s failed", url)
				}
				return &webextract.FetchResult{HTML: "<p>x</p>", FinalURL: url}, nil
			},
		}
		markdown := &mock.MarkdownExtractor{
			ExtractMarkdownFn: func(html string) (*webextract.MarkdownResult, error) {
				return &webextract.MarkdownResult{Markdown: "x", WordCount: 1}, nil
			},
		}

		runner := &batch.Runner{Fetcher: fetcher, Markdown: markdown}

		result, err := runner.Run(context.Background(), []string{
			"https://example.com/ok",
			"https://example.com/bad",
			"https://example.com/also-ok",
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*webextract.FetchResult, error) {
				return &webextract.FetchResult{HTML: "<p>x</p>", FinalURL: url}, nil
			},
		}
		markdown := &mock.MarkdownExtractor{
			ExtractMarkdownFn: func(html string) (*webextract.MarkdownResult, error) {
				return &webextract.MarkdownResult{Markdown: "x", WordCount: 1}, nil
			},
		}

		var mu sync.Mutex
		var events []batch.ProgressEvent
		progress := func(event batch.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
		}

		runner := &batch.Runner{Fetcher: fetcher, Markdown: markdown}

		_, err := runner.Run(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/b",
		}, progress)
		require.NoError(t, err)

		require.Len(t, events, 4)
		assert.Equal(t, batch.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, batch.ProgressCompleted, events[1].Type)
		assert.Equal(t, batch.ProgressCompleted, events[2].Type)
		assert.Equal(t, batch.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Completed)
	})

	t.Run("failed URL emits a failed event with the error", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*webextract.FetchResult, error) {
				return nil, webextract.Errorf(webextract.EUPSTREAM, "boom")
			},
		}
		markdown := &mock.MarkdownExtractor{
			ExtractMarkdownFn: func(html string) (*webextract.MarkdownResult, error) {
				return &webextract.MarkdownResult{Markdown: "x"}, nil
			},
		}

		var events []batch.ProgressEvent
		progress := func(event batch.ProgressEvent) {
			events = append(events, event)
		}

		runner := &batch.Runner{Fetcher: fetcher, Markdown: markdown, Concurrency: 1}

		_, err := runner.Run(context.Background(), []string{"https://example.com/a"}, progress)
		require.NoError(t, err)

		require.Len(t, events, 3)
		assert.Equal(t, batch.ProgressFailed, events[1].Type)
		assert.Equal(t, "https://example.com/a", events[1].URL)
		assert.Error(t, events[1].Err)
	})

	t.Run("waits on the limiter per domain", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				mu.Lock()
				defer mu.Unlock()
				domains = append(domains, domain)
				return nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*webextract.FetchResult, error) {
				return &webextract.FetchResult{HTML: "<p>x</p>", FinalURL: url}, nil
			},
		}
		markdown := &mock.MarkdownExtractor{
			ExtractMarkdownFn: func(html string) (*webextract.MarkdownResult, error) {
				return &webextract.MarkdownResult{Markdown: "x"}, nil
			},
		}

		runner := &batch.Runner{Fetcher: fetcher, Markdown: markdown, Limiter: limiter}

		_, err := runner.Run(context.Background(), []string{
			"https://one.example.com/a",
			"https://two.example.com/b",
		}, nil)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"one.example.com", "two.example.com"}, domains)
	})

	t.Run("uses the metadata title when available", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*webextract.FetchResult, error) {
				return &webextract.FetchResult{HTML: "<p>x</p>", FinalURL: url}, nil
			},
		}
		markdown := &mock.MarkdownExtractor{
			ExtractMarkdownFn: func(html string) (*webextract.MarkdownResult, error) {
				return &webextract.MarkdownResult{
					Markdown: "x",
					Headings: []webextract.Heading{{Level: 1, Text: "Heading Title"}},
				}, nil
			},
		}
		metadata := &mock.MetadataExtractor{
			ExtractMetadataFn: func(html, sourceURL string) (*webextract.Metadata, error) {
				return &webextract.Metadata{Title: "Meta Title"}, nil
			},
		}

		var got *webextract.Extraction
		writer := &mock.ExtractionWriter{
			CreateExtractionFn: func(ctx context.Context, e *webextract.Extraction) error {
				got = e
				return nil
			},
		}

		runner := &batch.Runner{
			Fetcher:  fetcher,
			Markdown: markdown,
			Metadata: metadata,
			Writers:  []webextract.ExtractionWriter{writer},
		}

		_, err := runner.Run(context.Background(), []string{"https://example.com/a"}, nil)
		require.NoError(t, err)

		require.NotNil(t, got)
		assert.Equal(t, "Meta Title", got.Title)
		assert.Equal(t, "https://example.com/a", got.SourceURL)
		assert.False(t, got.RetrievedAt.IsZero())
		assert.WithinDuration(t, time.Now().UTC(), got.RetrievedAt, time.Minute)
	})

	t.Run("falls back to the first heading without metadata", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*webextract.FetchResult, error) {
				return &webextract.FetchResult{HTML: "<h1>Fallback</h1>", FinalURL: url}, nil
			},
		}
		markdown := &mock.MarkdownExtractor{
			ExtractMarkdownFn: func(html string) (*webextract.MarkdownResult, error) {
				return &webextract.MarkdownResult{
					Markdown: "# Fallback",
					Headings: []webextract.Heading{{Level: 1, Text: "Fallback"}},
				}, nil
			},
		}

		var got *webextract.Extraction
		writer := &mock.ExtractionWriter{
			CreateExtractionFn: func(ctx context.Context, e *webextract.Extraction) error {
				got = e
				return nil
			},
		}

		runner := &batch.Runner{
			Fetcher:  fetcher,
			Markdown: markdown,
			Writers:  []webextract.ExtractionWriter{writer},
		}

		_, err := runner.Run(context.Background(), []string{"https://example.com/a"}, nil)
		require.NoError(t, err)

		require.NotNil(t, got)
		assert.Equal(t, "Fallback", got.Title)
	})

	t.Run("requires a fetcher and an extractor", func(t *testing.T) {
		t.Parallel()

		runner := &batch.Runner{}
		_, err := runner.Run(context.Background(), []string{"https://example.com/a"}, nil)
		require.Error(t, err)
		assert.Equal(t, webextract.EINVALID, webextract.ErrorCode(err))
	})
}
