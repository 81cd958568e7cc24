package webextract

import (
	"context"
	"time"
)

// Extraction is a stored markdown extraction result.
type Extraction struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Markdown    string    `json:"markdown"`
	WordCount   int       `json:"wordCount"`
	ContentHash string    `json:"contentHash"`
	RetrievedAt time.Time `json:"retrievedAt"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.SourceURL == "" {
		return Errorf(EINVALID, "extraction source URL required")
	}
	return nil
}

// ExtractionWriter writes extractions to storage.
type ExtractionWriter interface {
	CreateExtraction(ctx context.Context, extraction *Extraction) error
}

// ExtractionService represents a service for managing stored extractions.
type ExtractionService interface {
	// CreateExtraction stores a new extraction.
	CreateExtraction(ctx context.Context, extraction *Extraction) error

	// FindExtractionByID retrieves an extraction by ID.
	// Returns EINVALID if the extraction does not exist.
	FindExtractionByID(ctx context.Context, id string) (*Extraction, error)

	// FindExtractions retrieves extractions matching the filter,
	// newest first.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)

	// DeleteExtraction permanently removes an extraction.
	DeleteExtraction(ctx context.Context, id string) error
}

// ExtractionFilter is a filter for FindExtractions.
type ExtractionFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
