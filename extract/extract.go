// Package extract orchestrates extraction operations. It classifies the
// input (raw HTML vs URL), delegates URL inputs to the fetch collaborator,
// invokes the extraction engines, and wraps the outcome in the uniform
// response envelope. Extraction itself never performs I/O; only the fetch
// preceding it may suspend.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// DefaultFetchTimeout bounds URL fetches when the caller supplies none.
const DefaultFetchTimeout = 10 * time.Second

// Service executes extraction operations. All fields hold stateless
// collaborators, so a single Service is safe for concurrent use; one
// failing extraction never affects others.
type Service struct {
	Fetcher  webextract.Fetcher
	Markdown webextract.MarkdownExtractor
	Tables   webextract.TableExtractor
	Metadata webextract.MetadataExtractor

	// Timeout bounds the fetch when the input is a URL.
	Timeout time.Duration

	// Now reports the current time. Overridable in tests; defaults to
	// time.Now.
	Now func() time.Time
}

// MarkdownData is the data payload of the markdown operation.
type MarkdownData struct {
	Markdown  string               `json:"markdown"`
	Headings  []webextract.Heading `json:"headings"`
	WordCount int                  `json:"word_count"`
}

// TablesData is the data payload of the tables operation.
type TablesData struct {
	Tables []*webextract.TableRecord `json:"tables"`
	Count  int                       `json:"count"`
}

// ExtractMarkdown runs the markdown view operation.
func (s *Service) ExtractMarkdown(ctx context.Context, input string) *webextract.Response {
	return s.run(ctx, input, func(html, _ string) (any, []string, error) {
		result, err := s.Markdown.ExtractMarkdown(html)
		if err != nil {
			return nil, nil, err
		}
		headings := result.Headings
		if headings == nil {
			headings = []webextract.Heading{}
		}
		data := &MarkdownData{
			Markdown:  result.Markdown,
			Headings:  headings,
			WordCount: result.WordCount,
		}
		return data, result.Warnings, nil
	})
}

// ExtractTables runs the tables view operation.
func (s *Service) ExtractTables(ctx context.Context, input string) *webextract.Response {
	return s.run(ctx, input, func(html, _ string) (any, []string, error) {
		tables, err := s.Tables.ExtractTables(html)
		if err != nil {
			return nil, nil, err
		}
		var warnings []string
		if len(tables) == 0 {
			warnings = append(warnings, webextract.WarnNoTables)
		}
		return &TablesData{Tables: tables, Count: len(tables)}, warnings, nil
	})
}

// ExtractMetadata runs the metadata view operation. For URL inputs the
// final fetched URL participates in the canonical URL fallback chain.
func (s *Service) ExtractMetadata(ctx context.Context, input string) *webextract.Response {
	return s.run(ctx, input, func(html, source string) (any, []string, error) {
		meta, err := s.Metadata.ExtractMetadata(html, source)
		if err != nil {
			return nil, nil, err
		}
		return meta, meta.Warnings, nil
	})
}

// IsURL reports whether the input string is a URL rather than raw markup.
func IsURL(input string) bool {
	lower := strings.ToLower(strings.TrimSpace(input))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

type operation func(html, source string) (data any, warnings []string, err error)

func (s *Service) run(ctx context.Context, input string, op operation) (resp *webextract.Response) {
	timeNow := time.Now
	if s.Now != nil {
		timeNow = s.Now
	}
	retrievedAt := func() string {
		return timeNow().UTC().Format(time.RFC3339)
	}

	// The operation boundary: anything unexpected becomes INTERNAL_ERROR
	// instead of crashing the process or other in-flight extractions.
	defer func() {
		if r := recover(); r != nil {
			resp = failure(retrievedAt(), &webextract.Error{
				Code:    webextract.EINTERNAL,
				Message: fmt.Sprintf("extraction panicked: %v", r),
			})
		}
	}()

	if strings.TrimSpace(input) == "" {
		return failure(retrievedAt(), webextract.Errorf(webextract.EINVALID, "input must be a non-empty HTML string or URL"))
	}

	html := input
	source := ""
	if IsURL(input) {
		if s.Fetcher == nil {
			return failure(retrievedAt(), webextract.Errorf(webextract.EINVALID, "URL input requires a configured fetcher"))
		}
		timeout := s.Timeout
		if timeout <= 0 {
			timeout = DefaultFetchTimeout
		}
		fctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		fetched, err := s.Fetcher.Fetch(fctx, input)
		if err != nil {
			return failure(retrievedAt(), classifyFetchError(input, timeout, err))
		}
		html = fetched.HTML
		source = fetched.FinalURL
		if source == "" {
			source = input
		}
	}

	data, warnings, err := op(html, source)
	if err != nil {
		return failure(retrievedAt(), asAppError(err))
	}
	if warnings == nil {
		warnings = []string{}
	}

	return &webextract.Response{
		OK:   true,
		Data: data,
		Meta: webextract.Meta{
			Source:      source,
			RetrievedAt: retrievedAt(),
			Pagination:  &webextract.Pagination{},
			Warnings:    warnings,
		},
	}
}

// classifyFetchError maps fetch failures onto envelope codes. Timeouts
// abandon the fetch before extraction ever runs; everything else from the
// fetch collaborator is upstream trouble.
func classifyFetchError(url string, timeout time.Duration, err error) *webextract.Error {
	if errors.Is(err, context.DeadlineExceeded) || webextract.ErrorCode(err) == webextract.ETIMEOUT {
		e := webextract.Errorf(webextract.ETIMEOUT, "fetch of %s timed out", url)
		e.Details = map[string]any{"timeout_ms": timeout.Milliseconds()}
		return e
	}

	code := webextract.EUPSTREAM
	message := fmt.Sprintf("fetch of %s failed: %v", url, err)

	var appErr *webextract.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
		if appErr.Code == webextract.ERATELIMITED || appErr.Code == webextract.EUPSTREAM {
			code = appErr.Code
		}
	}

	details := map[string]any{"url": url}
	for k, v := range webextract.ErrorDetails(err) {
		details[k] = v
	}
	return &webextract.Error{
		Code:    code,
		Message: message,
		Details: details,
	}
}

func asAppError(err error) *webextract.Error {
	var e *webextract.Error
	if errors.As(err, &e) {
		return e
	}
	return webextract.Errorf(webextract.EINTERNAL, "unexpected error: %v", err)
}

func failure(retrievedAt string, err *webextract.Error) *webextract.Response {
	return &webextract.Response{
		OK: false,
		Error: &webextract.ErrorBody{
			Code:    err.Code,
			Message: err.Message,
			Details: err.Details,
		},
		Meta: webextract.Meta{RetrievedAt: retrievedAt},
	}
}
