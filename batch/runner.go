// Package batch runs markdown extraction over many URLs concurrently.
// It coordinates URL deduplication, per-domain rate limiting, fetching,
// extraction, and storage.
package batch

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
	"github.com/BUZDOLAPCI/webpage-extract/bloom"
)

// Runner orchestrates a batch extraction run.
type Runner struct {
	Fetcher  webextract.Fetcher
	Markdown webextract.MarkdownExtractor

	// Metadata, when set, supplies page titles for stored extractions.
	Metadata webextract.MetadataExtractor

	// Writers receive every successful extraction.
	Writers []webextract.ExtractionWriter

	// Limiter, when set, throttles fetches per domain.
	Limiter webextract.DomainLimiter

	Concurrency int
}

// Result holds the outcome of a batch run.
type Result struct {
	RunID   string
	Saved   int
	Failed  int
	Skipped int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Err       error
}

// ProgressFunc is a callback for reporting batch progress. It may be
// invoked from multiple goroutines, but never concurrently.
type ProgressFunc func(event ProgressEvent)

// Run extracts every URL and writes the results to the configured writers.
// One URL failing never aborts the run; failures are counted and reported
// through the progress callback.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if r.Fetcher == nil || r.Markdown == nil {
		return nil, webextract.Errorf(webextract.EINVALID, "batch runner requires a fetcher and a markdown extractor")
	}

	result := &Result{RunID: uuid.New().String()}

	seen := bloom.NewFilter(uint(len(urls))+1024, 0.001)
	var unique []string
	for _, u := range urls {
		if seen.Seen(u) {
			result.Skipped++
			continue
		}
		unique = append(unique, u)
	}

	total := len(unique)
	var mu sync.Mutex
	completed := 0
	emit := func(event ProgressEvent) {
		if progress != nil {
			progress(event)
		}
	}
	emit(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, pageURL := range unique {
		g.Go(func() error {
			err := r.processURL(gctx, pageURL)

			mu.Lock()
			defer mu.Unlock()
			completed++
			if err != nil {
				result.Failed++
				emit(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, URL: pageURL, Err: err})
			} else {
				result.Saved++
				emit(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: pageURL})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	emit(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	return result, nil
}

func (r *Runner) processURL(ctx context.Context, pageURL string) error {
	if r.Limiter != nil {
		if u, err := url.Parse(pageURL); err == nil {
			if err := r.Limiter.Wait(ctx, u.Host); err != nil {
				return err
			}
		}
	}

	fetched, err := r.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return err
	}

	md, err := r.Markdown.ExtractMarkdown(fetched.HTML)
	if err != nil {
		return err
	}

	source := fetched.FinalURL
	if source == "" {
		source = pageURL
	}

	title := ""
	if r.Metadata != nil {
		if meta, err := r.Metadata.ExtractMetadata(fetched.HTML, source); err == nil {
			title = meta.Title
		}
	}
	if title == "" && len(md.Headings) > 0 {
		title = md.Headings[0].Text
	}

	extraction := &webextract.Extraction{
		SourceURL:   source,
		Title:       title,
		Markdown:    md.Markdown,
		WordCount:   md.WordCount,
		RetrievedAt: time.Now().UTC(),
	}
	for _, w := range r.Writers {
		if err := w.CreateExtraction(ctx, extraction); err != nil {
			return err
		}
	}
	return nil
}
