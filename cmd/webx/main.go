package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/BUZDOLAPCI/webpage-extract/goquery"
	"github.com/BUZDOLAPCI/webpage-extract/htmltomarkdown"
	webhttp "github.com/BUZDOLAPCI/webpage-extract/http"
	webslog "github.com/BUZDOLAPCI/webpage-extract/slog"
	"github.com/BUZDOLAPCI/webpage-extract/sqlite"
	"github.com/BUZDOLAPCI/webpage-extract/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the batch command when --db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webx"),
		kong.Description("Derive markdown, table, and metadata views from webpages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webx --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Wire extraction engines. The goquery engine serves all three views;
	// the trafilatura engine is the opt-in alternative for markdown.
	engine := goquery.NewEngine()
	deps.Markdown = engine
	deps.Tables = engine
	deps.Metadata = engine
	deps.Readability = trafilatura.NewExtractor(htmltomarkdown.NewConverter())

	fetcher := webhttp.NewFetcher()
	defer fetcher.Close()
	deps.Fetcher = fetcher
	deps.Sitemaps = webhttp.NewSitemapService(nil)

	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		deps.Fetcher = webslog.NewLoggingFetcher(fetcher, logger)
		deps.Sitemaps = webslog.NewLoggingSitemapService(deps.Sitemaps, logger)
	}

	if cmd == "batch" && cli.Batch.DB != "" {
		m.DB = sqlite.NewDB(cli.Batch.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WEBX_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.Batch.DB, err)
		}
		defer m.Close()
		deps.Extractions = sqlite.NewExtractionService(m.DB)
	}

	return kongCtx.Run(deps)
}
