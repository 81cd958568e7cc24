package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// pageData is the pre-scanned raw material the resolver chains draw from.
// Scanning happens once per extraction; resolution is pure lookups.
type pageData struct {
	doc       *goquery.Document
	sourceURL string

	titleText string
	byName    map[string]string // meta[name], lowercased keys, last wins
	byProp    map[string]string // meta[property], lowercased keys, last wins
	byItem    map[string]string // meta[itemprop], lowercased keys, last wins

	openGraph map[string]string
	metaTags  map[string]string
	jsonLD    []any
}

// resolverFunc is one step in a field's fallback chain. It returns "" when
// the step yields nothing, letting the next step run.
type resolverFunc func(p *pageData) string

// resolve evaluates a chain lazily, first non-empty result wins.
func resolve(p *pageData, chain []resolverFunc) string {
	for _, step := range chain {
		if v := step(p); v != "" {
			return v
		}
	}
	return ""
}

// ExtractMetadata resolves the metadata view. Every scalar field follows a
// strict first-match-wins fallback chain; the collection fields (open
// graph, JSON-LD, meta tags) are gathered exhaustively.
func (e *Engine) ExtractMetadata(rawHTML string, sourceURL string) (*webextract.Metadata, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}

	p := scanPage(doc, sourceURL)

	meta := &webextract.Metadata{
		Title:        resolve(p, titleChain),
		Description:  resolve(p, descriptionChain),
		CanonicalURL: resolve(p, canonicalChain),
		Author:       resolve(p, authorChain),
		PublishDate:  resolve(p, publishDateChain),
		OpenGraph:    p.openGraph,
		JSONLD:       p.jsonLD,
		MetaTags:     p.metaTags,
	}

	if meta.Title == "" {
		meta.Warnings = append(meta.Warnings, webextract.WarnNoTitle)
	}
	if meta.Description == "" {
		meta.Warnings = append(meta.Warnings, webextract.WarnNoDescription)
	}
	if len(meta.OpenGraph) == 0 {
		meta.Warnings = append(meta.Warnings, webextract.WarnNoOpenGraph)
	}
	return meta, nil
}

func scanPage(doc *goquery.Document, sourceURL string) *pageData {
	p := &pageData{
		doc:       doc,
		sourceURL: sourceURL,
		byName:    map[string]string{},
		byProp:    map[string]string{},
		byItem:    map[string]string{},
		openGraph: map[string]string{},
		metaTags:  map[string]string{},
		jsonLD:    []any{},
	}

	p.titleText = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content := s.AttrOr("content", "")
		name := s.AttrOr("name", "")
		property := s.AttrOr("property", "")
		itemprop := s.AttrOr("itemprop", "")

		if name != "" {
			p.byName[strings.ToLower(name)] = content
		}
		if property != "" {
			p.byProp[strings.ToLower(property)] = content
		}
		if itemprop != "" {
			p.byItem[strings.ToLower(itemprop)] = content
		}

		// Tag identity: name, else property, else itemprop. Later
		// elements overwrite earlier ones.
		switch {
		case name != "":
			p.metaTags[name] = content
		case property != "":
			p.metaTags[property] = content
		case itemprop != "":
			p.metaTags[itemprop] = content
		}

		if rest, ok := strings.CutPrefix(strings.ToLower(property), "og:"); ok && rest != "" {
			p.openGraph[rest] = content
		}
	})

	// JSON-LD blocks parse independently; a malformed block never
	// materializes a record and never produces a warning.
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if !strings.EqualFold(strings.TrimSpace(s.AttrOr("type", "")), "application/ld+json") {
			return
		}
		var value any
		if err := json.Unmarshal([]byte(s.Text()), &value); err != nil {
			return
		}
		p.jsonLD = append(p.jsonLD, value)
	})

	return p
}

// Fallback chains. Each step is independently testable; the chain order is
// the contract.

var titleChain = []resolverFunc{
	func(p *pageData) string { return p.titleText },
	metaProp("og:title"),
}

var descriptionChain = []resolverFunc{
	metaName("description"),
	metaProp("og:description"),
}

var canonicalChain = []resolverFunc{
	func(p *pageData) string {
		return strings.TrimSpace(p.doc.Find("link[rel='canonical']").First().AttrOr("href", ""))
	},
	metaProp("og:url"),
	func(p *pageData) string { return p.sourceURL },
}

var authorChain = []resolverFunc{
	metaName("author"),
	metaProp("article:author"),
	jsonLDAuthor,
	jsonLDString("creator"),
	func(p *pageData) string {
		return strings.TrimSpace(p.doc.Find("a[rel='author']").First().Text())
	},
}

var publishDateChain = []resolverFunc{
	metaAny("article:published_time"),
	metaAny("datePublished"),
	metaAny("date"),
	metaAny("pubdate"),
	metaAny("DC.date.issued"),
	jsonLDString("datePublished", "dateCreated"),
	func(p *pageData) string {
		return strings.TrimSpace(p.doc.Find("time[datetime]").First().AttrOr("datetime", ""))
	},
}

func metaName(key string) resolverFunc {
	key = strings.ToLower(key)
	return func(p *pageData) string { return strings.TrimSpace(p.byName[key]) }
}

func metaProp(key string) resolverFunc {
	key = strings.ToLower(key)
	return func(p *pageData) string { return strings.TrimSpace(p.byProp[key]) }
}

// metaAny looks the key up by name, then property, then itemprop.
func metaAny(key string) resolverFunc {
	key = strings.ToLower(key)
	return func(p *pageData) string {
		if v := strings.TrimSpace(p.byName[key]); v != "" {
			return v
		}
		if v := strings.TrimSpace(p.byProp[key]); v != "" {
			return v
		}
		return strings.TrimSpace(p.byItem[key])
	}
}

// jsonLDAuthor scans the parsed blocks in order for an author field that is
// either a string or an object with a name.
func jsonLDAuthor(p *pageData) string {
	for _, block := range p.jsonLD {
		obj, ok := block.(map[string]any)
		if !ok {
			continue
		}
		switch author := obj["author"].(type) {
		case string:
			if v := strings.TrimSpace(author); v != "" {
				return v
			}
		case map[string]any:
			if name, ok := author["name"].(string); ok {
				if v := strings.TrimSpace(name); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// jsonLDString scans the parsed blocks in order for the first key that
// holds a non-empty string value.
func jsonLDString(keys ...string) resolverFunc {
	return func(p *pageData) string {
		for _, block := range p.jsonLD {
			obj, ok := block.(map[string]any)
			if !ok {
				continue
			}
			for _, key := range keys {
				if s, ok := obj[key].(string); ok {
					if v := strings.TrimSpace(s); v != "" {
						return v
					}
				}
			}
		}
		return ""
	}
}
