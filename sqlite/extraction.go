package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// Compile-time interface verification.
var _ webextract.ExtractionService = (*ExtractionService)(nil)

// ExtractionService implements webextract.ExtractionService using SQLite.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// hashContent computes the xxHash of content and returns a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateExtraction stores a new extraction. The ID, content hash, and
// retrieval timestamp are assigned here.
func (s *ExtractionService) CreateExtraction(ctx context.Context, extraction *webextract.Extraction) error {
	if err := extraction.Validate(); err != nil {
		return err
	}

	extraction.ID = uuid.New().String()
	extraction.ContentHash = hashContent(extraction.Markdown)
	if extraction.RetrievedAt.IsZero() {
		extraction.RetrievedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, source_url, title, markdown, word_count, content_hash, retrieved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, extraction.ID, extraction.SourceURL, extraction.Title, extraction.Markdown,
		extraction.WordCount, extraction.ContentHash, extraction.RetrievedAt.Format(time.RFC3339))

	return err
}

// FindExtractionByID retrieves an extraction by ID.
func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*webextract.Extraction, error) {
	var extraction webextract.Extraction
	var retrievedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, markdown, word_count, content_hash, retrieved_at
		FROM extractions
		WHERE id = ?
	`, id).Scan(&extraction.ID, &extraction.SourceURL, &extraction.Title, &extraction.Markdown,
		&extraction.WordCount, &extraction.ContentHash, &retrievedAt)

	if err == sql.ErrNoRows {
		return nil, webextract.Errorf(webextract.EINVALID, "extraction not found")
	}
	if err != nil {
		return nil, err
	}

	extraction.RetrievedAt, err = time.Parse(time.RFC3339, retrievedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse retrieved_at: %w", err)
	}

	return &extraction, nil
}

// FindExtractions retrieves extractions matching the filter, newest first.
func (s *ExtractionService) FindExtractions(ctx context.Context, filter webextract.ExtractionFilter) ([]*webextract.Extraction, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, title, markdown, word_count, content_hash, retrieved_at FROM extractions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY retrieved_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*webextract.Extraction
	for rows.Next() {
		var extraction webextract.Extraction
		var retrievedAt string

		if err := rows.Scan(&extraction.ID, &extraction.SourceURL, &extraction.Title,
			&extraction.Markdown, &extraction.WordCount, &extraction.ContentHash, &retrievedAt); err != nil {
			return nil, err
		}

		extraction.RetrievedAt, err = time.Parse(time.RFC3339, retrievedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse retrieved_at: %w", err)
		}

		extractions = append(extractions, &extraction)
	}

	return extractions, rows.Err()
}

// DeleteExtraction permanently removes an extraction.
func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return webextract.Errorf(webextract.EINVALID, "extraction not found")
	}

	return nil
}
