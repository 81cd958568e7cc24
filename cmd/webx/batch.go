package main

import (
	"fmt"
	"regexp"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
	"github.com/BUZDOLAPCI/webpage-extract/batch"
	"github.com/BUZDOLAPCI/webpage-extract/fs"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	var writers []webextract.ExtractionWriter
	if c.Out != "" {
		writers = append(writers, fs.NewWriter(c.Out))
	}
	if deps.Extractions != nil {
		writers = append(writers, deps.Extractions)
	}
	if len(writers) == 0 {
		return fmt.Errorf("nothing to write: set --out and/or --db")
	}

	// Compile filters early so a bad pattern fails before any fetching
	urlFilter, err := compileFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webextract.ErrorMessage(err))
		return err
	}

	engine := deps.Markdown
	if c.Engine == "readability" {
		engine = deps.Readability
	}

	runner := &batch.Runner{
		Fetcher:     deps.Fetcher,
		Markdown:    engine,
		Metadata:    deps.Metadata,
		Writers:     writers,
		Limiter:     batch.NewDomainLimiter(c.RPS),
		Concurrency: c.Concurrency,
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d URLs\n", event.Total)
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "\r[%d/%d]", event.Completed, event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Err)
		case batch.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := runner.Run(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webextract.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nSaved %d pages (%d failed, %d duplicates skipped)\n",
		result.Saved, result.Failed, result.Skipped)
	return nil
}

// compileFilter builds a URLFilter from include and exclude patterns.
func compileFilter(include, exclude []string) (*webextract.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &webextract.URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}
