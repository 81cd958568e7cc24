package webextract

// TableRecord is a normalized data table. Every row has exactly
// len(Headers) cells; short rows and headers are right-padded with empty
// strings rather than rejected.
type TableRecord struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Caption string     `json:"caption,omitempty"`
}

// WarnNoTables is attached when a page yields no data tables.
const WarnNoTables = "no data tables found in document"

// TableExtractor extracts all data tables from raw HTML, in document order.
// Layout tables (role=presentation, layout-ish class names, deeply nested
// tables) are excluded.
type TableExtractor interface {
	ExtractTables(html string) ([]*TableRecord, error)
}
