package main

import (
	"context"
	"io"
	"time"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Fetcher     webextract.Fetcher
	Markdown    webextract.MarkdownExtractor
	Readability webextract.MarkdownExtractor
	Tables      webextract.TableExtractor
	Metadata    webextract.MetadataExtractor
	Sitemaps    webextract.SitemapService
	Extractions webextract.ExtractionService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Markdown MarkdownCmd `cmd:"" help:"Extract the readable article as markdown"`
	Tables   TablesCmd   `cmd:"" help:"Extract structured tables"`
	Metadata MetadataCmd `cmd:"" help:"Extract page metadata"`
	Batch    BatchCmd    `cmd:"" help:"Extract markdown from every page of a site"`

	Verbose bool `short:"v" help:"Log requests to stderr"`
}

// MarkdownCmd is the "markdown" subcommand.
type MarkdownCmd struct {
	Input   string        `arg:"" optional:"" help:"URL, raw HTML, or '-' for stdin"`
	File    string        `short:"f" help:"Read HTML from a file instead"`
	Engine  string        `enum:"dom,readability" default:"dom" help:"Extraction engine (dom, readability)"`
	Timeout time.Duration `default:"10s" help:"Fetch timeout for URL inputs"`
	Pretty  bool          `short:"p" help:"Indent JSON output"`
}

// TablesCmd is the "tables" subcommand.
type TablesCmd struct {
	Input   string        `arg:"" optional:"" help:"URL, raw HTML, or '-' for stdin"`
	File    string        `short:"f" help:"Read HTML from a file instead"`
	Timeout time.Duration `default:"10s" help:"Fetch timeout for URL inputs"`
	Pretty  bool          `short:"p" help:"Indent JSON output"`
}

// MetadataCmd is the "metadata" subcommand.
type MetadataCmd struct {
	Input   string        `arg:"" optional:"" help:"URL, raw HTML, or '-' for stdin"`
	File    string        `short:"f" help:"Read HTML from a file instead"`
	Timeout time.Duration `default:"10s" help:"Fetch timeout for URL inputs"`
	Pretty  bool          `short:"p" help:"Indent JSON output"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URL         string   `arg:"" help:"Site or sitemap URL to expand"`
	Out         string   `short:"o" help:"Directory to write markdown files"`
	DB          string   `env:"WEBX_DB" help:"SQLite database path for stored extractions"`
	Filter      []string `short:"F" name:"filter" help:"Include URLs matching regex (repeatable)"`
	Exclude     []string `help:"Exclude URLs matching regex (repeatable)"`
	Engine      string   `enum:"dom,readability" default:"dom" help:"Extraction engine (dom, readability)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `default:"1" help:"Max requests per second per domain"`
}
