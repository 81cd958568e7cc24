// Package fs provides file-based storage for extracted markdown.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// URLToPath converts a source URL to a relative markdown file path.
// Example: https://example.com/blog/post → blog/post.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}
	return path + ".md", nil
}

// FormatExtraction formats an extraction with YAML frontmatter.
func FormatExtraction(extraction *webextract.Extraction) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(extraction.SourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(extraction.Title)
	b.WriteString("\nretrieved: ")
	b.WriteString(extraction.RetrievedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(extraction.Markdown)
	return b.String()
}

// Ensure Writer implements webextract.ExtractionWriter at compile time.
var _ webextract.ExtractionWriter = (*Writer)(nil)

// Writer writes extractions as markdown files under a base directory.
// Files whose markdown is unchanged (by content hash) are not rewritten.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateExtraction writes an extraction to disk as a markdown file.
func (w *Writer) CreateExtraction(ctx context.Context, extraction *webextract.Extraction) error {
	if err := extraction.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(extraction.SourceURL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(w.baseDir, relPath)

	content := FormatExtraction(extraction)

	// Skip the write when the file already holds identical content.
	if existing, err := os.ReadFile(fullPath); err == nil {
		if xxhash.Sum64(existing) == xxhash.Sum64String(content) {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
