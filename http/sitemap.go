package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// Ensure SitemapService implements webextract.SitemapService.
var _ webextract.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP, feeding
// batch extraction runs.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs from a site's sitemap. Sitemap locations
// come from robots.txt Sitemap: directives, falling back to /sitemap.xml.
// Sitemap indexes are resolved recursively; URLs are deduplicated across
// sitemaps. Returns an empty slice (not nil) when nothing is found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *webextract.URLFilter) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, webextract.Errorf(webextract.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	sitemapURLs := s.findSitemapURLs(ctx, base)

	urls := []string{}
	seenSitemaps := map[string]bool{}
	seenURLs := map[string]bool{}
	for _, sitemapURL := range sitemapURLs {
		found, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seenURLs[u] || !filter.Match(u) {
				continue
			}
			seenURLs[u] = true
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// findSitemapURLs checks robots.txt for Sitemap: directives, then falls
// back to the conventional /sitemap.xml location.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if body, err := s.get(ctx, robotsURL.String()); err == nil {
		defer body.Close()
		var sitemaps []string
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
				if sitemapURL := strings.TrimSpace(line[len("sitemap:"):]); sitemapURL != "" {
					sitemaps = append(sitemaps, sitemapURL)
				}
			}
		}
		if scanner.Err() == nil && len(sitemaps) > 0 {
			return sitemaps
		}
	}

	return []string{base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}
}

// processSitemap fetches and parses one sitemap, recursing into sitemap
// indexes. A sitemap that cannot be fetched yields no URLs rather than
// failing the whole discovery.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, nil
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, webextract.Errorf(webextract.EPARSE, "parsing sitemap %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, sitemap := range root.SelectElements("sitemap") {
			loc := sitemap.SelectElement("loc")
			if loc == nil {
				continue
			}
			nested, err := s.processSitemap(ctx, strings.TrimSpace(loc.Text()), seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, nested...)
		}
		return urls, nil
	}

	var urls []string
	for _, u := range root.SelectElements("url") {
		loc := u.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			urls = append(urls, text)
		}
	}
	return urls, nil
}

func (s *SitemapService) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, webextract.Errorf(webextract.EUPSTREAM, "HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}
