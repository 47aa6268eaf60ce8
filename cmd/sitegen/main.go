// Command sitegen renders sitemap.xml, robots.txt and rss.xml from the seed
// catalog so they can be served from a static host or object storage.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/invirogens/website/internal/config"
	"github.com/invirogens/website/internal/seed"
	"github.com/invirogens/website/internal/sitemap"
	"github.com/invirogens/website/internal/storage"
	"github.com/invirogens/website/internal/store"
	"github.com/invirogens/website/pkg/logger"
)

type options struct {
	Origin   string `long:"origin" env:"SITE_URL" description:"Public origin, e.g. https://invirogens.site" required:"true"`
	Out      string `long:"out" default:"./public" description:"Output directory"`
	Upload   bool   `long:"upload" description:"Also upload the documents to the MinIO media bucket"`
	LogLevel string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}
	logger.Init(opts.LogLevel)

	if err := run(context.Background(), opts); err != nil {
		logger.Fatalf("sitegen: %v", err)
	}
}

func run(ctx context.Context, opts options) error {
	docs, err := render(opts.Origin, time.Now())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.Out, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", opts.Out, err)
	}
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(opts.Out, name)
		if err := os.WriteFile(path, docs[name], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Infof("wrote %s (%d bytes)", path, len(docs[name]))
	}

	if !opts.Upload {
		return nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	media, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return err
	}
	for _, name := range names {
		body := docs[name]
		if err := media.UploadFile(ctx, name, bytes.NewReader(body), int64(len(body)), contentType(name)); err != nil {
			return fmt.Errorf("upload %s: %w", name, err)
		}
		logger.Infof("uploaded %s to bucket %s", name, cfg.MinIO.Bucket)
	}
	return nil
}

// render builds every SEO document for origin from the seed catalog.
func render(origin string, now time.Time) (map[string][]byte, error) {
	origin = strings.TrimRight(origin, "/")
	if origin == "" {
		return nil, fmt.Errorf("origin is required")
	}
	data, err := seed.Load()
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	st, err := store.NewMemoryStore(data.Products, data.News)
	if err != nil {
		return nil, err
	}

	sm, err := sitemap.Generate(origin, st.ListProducts(), st.ListNews(), now)
	if err != nil {
		return nil, fmt.Errorf("sitemap: %w", err)
	}
	feed, err := sitemap.RSS(origin, st.ListNews(), now)
	if err != nil {
		return nil, fmt.Errorf("rss: %w", err)
	}
	return map[string][]byte{
		"sitemap.xml": sm,
		"robots.txt":  []byte(sitemap.Robots(origin)),
		"rss.xml":     feed,
	}, nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".xml":
		if strings.HasPrefix(name, "rss") {
			return "application/rss+xml"
		}
		return "application/xml"
	default:
		return "text/plain; charset=utf-8"
	}
}
