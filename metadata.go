package webextract

// Metadata is the metadata view of a page. Scalar fields are resolved
// through first-match-wins fallback chains; empty means absent.
type Metadata struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	CanonicalURL string `json:"canonical_url,omitempty"`
	Author       string `json:"author,omitempty"`
	PublishDate  string `json:"publish_date,omitempty"`

	// OpenGraph maps og: property names (prefix stripped) to content.
	// Last occurrence wins on duplicate keys.
	OpenGraph map[string]string `json:"open_graph"`

	// JSONLD holds one parsed value per valid ld+json script block, in
	// document order. Malformed blocks are dropped silently.
	JSONLD []any `json:"json_ld"`

	// MetaTags maps tag identity (name, else property, else itemprop) to
	// content. Later elements overwrite earlier ones.
	MetaTags map[string]string `json:"meta_tags"`

	Warnings []string `json:"-"`
}

// Advisory warnings attached to successful metadata extractions.
const (
	WarnNoTitle       = "title not found in document"
	WarnNoDescription = "description not found in document"
	WarnNoOpenGraph   = "no Open Graph metadata found"
)

// MetadataExtractor resolves page metadata from raw HTML. The sourceURL,
// when non-empty, participates in the canonical URL fallback chain.
type MetadataExtractor interface {
	ExtractMetadata(html string, sourceURL string) (*Metadata, error)
}
