// Package sitemap renders the SEO documents served at the site root.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/invirogens/website/internal/schema"
)

// StaticPaths are the fixed pages listed before catalog entries.
var StaticPaths = []string{"/", "/about", "/products", "/news", "/contact", "/order"}

type URL struct {
	Loc     string
	LastMod time.Time
}

// Entries lists static pages, then products, then news, skipping repeated locations.
func Entries(origin string, products []schema.Product, news []schema.NewsArticle, now time.Time) []URL {
	origin = strings.TrimRight(origin, "/")
	out := make([]URL, 0, len(StaticPaths)+len(products)+len(news))
	seen := make(map[string]bool, cap(out))
	add := func(loc string, mod time.Time) {
		if seen[loc] {
			return
		}
		seen[loc] = true
		out = append(out, URL{Loc: loc, LastMod: mod.UTC()})
	}

	for _, p := range StaticPaths {
		add(origin+p, now)
	}
	for _, p := range products {
		add(origin+"/products/"+p.Slug, now)
	}
	for _, n := range news {
		mod := now
		if n.PublishedAt != nil {
			mod = *n.PublishedAt
		}
		add(origin+"/news/"+n.Slug, mod)
	}
	return out
}

// Render writes a sitemaps.org urlset.
func Render(urls []URL) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	buf.WriteString("\n")
	for _, u := range urls {
		buf.WriteString("  <url>\n")
		if err := writeElement(&buf, "loc", u.Loc, 4); err != nil {
			return nil, err
		}
		if err := writeElement(&buf, "lastmod", u.LastMod.Format(time.RFC3339), 4); err != nil {
			return nil, err
		}
		buf.WriteString("  </url>\n")
	}
	buf.WriteString("</urlset>")
	return buf.Bytes(), nil
}

// Generate is Entries followed by Render.
func Generate(origin string, products []schema.Product, news []schema.NewsArticle, now time.Time) ([]byte, error) {
	return Render(Entries(origin, products, news, now))
}

// Robots allows every crawler and points at the sitemap.
func Robots(origin string) string {
	return strings.Join([]string{
		"User-agent: *",
		"Allow: /",
		"",
		"Sitemap: " + strings.TrimRight(origin, "/") + "/sitemap.xml",
	}, "\n")
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) error {
	if content == "" {
		return nil
	}
	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteString("<" + tag + ">")
	if err := xml.EscapeText(buf, []byte(content)); err != nil {
		return err
	}
	buf.WriteString("</" + tag + ">\n")
	return nil
}
