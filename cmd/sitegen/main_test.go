package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	docs, err := render("https://invirogens.site/", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, docs, 3)
	require.Contains(t, string(docs["sitemap.xml"]), "<loc>https://invirogens.site/products/dna-extraction</loc>")
	require.True(t, strings.HasSuffix(string(docs["robots.txt"]), "Sitemap: https://invirogens.site/sitemap.xml"))
	require.Contains(t, string(docs["rss.xml"]), "<rss version=\"2.0\"")

	_, err = render("", time.Now())
	require.Error(t, err)
}

func TestRun_WritesFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	require.NoError(t, run(context.Background(), options{Origin: "http://localhost:5000", Out: out}))

	for _, name := range []string{"sitemap.xml", "robots.txt", "rss.xml"} {
		b, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err)
		require.NotEmpty(t, b)
	}
}

func TestOptions_Parse(t *testing.T) {
	t.Setenv("SITE_URL", "")
	require.NoError(t, os.Unsetenv("SITE_URL"))
	var opts options
	_, err := flags.NewParser(&opts, flags.None).ParseArgs([]string{"--origin", "https://invirogens.site", "--out", "dist"})
	require.NoError(t, err)
	require.Equal(t, "https://invirogens.site", opts.Origin)
	require.Equal(t, "dist", opts.Out)
	require.False(t, opts.Upload)

	var missing options
	_, err = flags.NewParser(&missing, flags.None).ParseArgs(nil)
	require.Error(t, err, "origin is required")
}

func TestContentType(t *testing.T) {
	require.Equal(t, "application/xml", contentType("sitemap.xml"))
	require.Equal(t, "application/rss+xml", contentType("rss.xml"))
	require.Equal(t, "text/plain; charset=utf-8", contentType("robots.txt"))
}
