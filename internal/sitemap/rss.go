package sitemap

import (
	"bytes"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/invirogens/website/internal/schema"
)

const (
	feedTitle       = "INVIROGENS News"
	feedDescription = "Product launches and announcements from INVIROGENS Biotech."
)

// RSS renders an RSS 2.0 news feed, newest articles first.
// Undated articles are listed last and carry no pubDate.
func RSS(origin string, news []schema.NewsArticle, now time.Time) ([]byte, error) {
	origin = strings.TrimRight(origin, "/")
	items := make([]schema.NewsArticle, len(news))
	copy(items, news)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	w := func(tag, content string, indent int) error { return writeElement(&buf, tag, content, indent) }
	if err := w("title", feedTitle, 4); err != nil {
		return nil, err
	}
	if err := w("link", origin+"/news", 4); err != nil {
		return nil, err
	}
	if err := w("description", feedDescription, 4); err != nil {
		return nil, err
	}
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(origin+"/rss.xml")))

	lastBuild := now
	if len(items) > 0 && items[0].PublishedAt != nil {
		lastBuild = *items[0].PublishedAt
	}
	if err := w("lastBuildDate", lastBuild.UTC().Format(time.RFC1123Z), 4); err != nil {
		return nil, err
	}
	if err := w("language", "en", 4); err != nil {
		return nil, err
	}

	for _, n := range items {
		link := origin + "/news/" + n.Slug
		buf.WriteString("    <item>\n")
		buf.WriteString("      <guid isPermaLink=\"true\">")
		buf.WriteString(html.EscapeString(link))
		buf.WriteString("</guid>\n")
		for _, el := range [][2]string{
			{"title", n.Title},
			{"link", link},
			{"description", n.Excerpt},
			{"content:encoded", paragraphs(n.Content)},
		} {
			if err := w(el[0], el[1], 6); err != nil {
				return nil, err
			}
		}
		if n.PublishedAt != nil {
			if err := w("pubDate", n.PublishedAt.UTC().Format(time.RFC1123Z), 6); err != nil {
				return nil, err
			}
		}
		buf.WriteString("    </item>\n")
	}

	buf.WriteString("  </channel>\n</rss>")
	return buf.Bytes(), nil
}

// paragraphs turns newline separated content into HTML paragraphs.
func paragraphs(content string) string {
	var parts []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, "<p>"+html.EscapeString(line)+"</p>")
		}
	}
	return strings.Join(parts, "")
}
