package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
	webhttp "github.com/BUZDOLAPCI/webpage-extract/http"
)

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("discovers URLs via robots.txt directive", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("User-agent: *\nSitemap: " + srv.URL + "/custom-sitemap.xml\n"))
		})
		mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>` + srv.URL + `/a</loc></url>
	<url><loc>` + srv.URL + `/b</loc></url>
</urlset>`))
		})

		s := webhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/a", srv.URL + "/b"}, urls)
	})

	t.Run("falls back to sitemap.xml without robots.txt", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<urlset><url><loc>` + srv.URL + `/only</loc></url></urlset>`))
		})

		s := webhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/only"}, urls)
	})

	t.Run("resolves sitemap indexes recursively", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<sitemapindex>
	<sitemap><loc>` + srv.URL + `/pages.xml</loc></sitemap>
</sitemapindex>`))
		})
		mux.HandleFunc("/pages.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<urlset><url><loc>` + srv.URL + `/nested</loc></url></urlset>`))
		})

		s := webhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/nested"}, urls)
	})

	t.Run("applies the URL filter", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<urlset>
	<url><loc>` + srv.URL + `/docs/keep</loc></url>
	<url><loc>` + srv.URL + `/blog/skip</loc></url>
</urlset>`))
		})

		filter := &webextract.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)}}

		s := webhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, filter)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/docs/keep"}, urls)
	})

	t.Run("no sitemap yields an empty slice", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		s := webhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Empty(t, urls)
		assert.NotNil(t, urls)
	})
}
