// Package seed holds the fixture catalog loaded into the store at startup.
package seed

import (
	"embed"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/invirogens/website/internal/schema"
)

//go:embed data/*.yaml
var files embed.FS

// Data is the decoded seed collection in file order.
type Data struct {
	Products []schema.InsertProduct
	News     []schema.InsertNews
}

type productDoc struct {
	Name             string  `yaml:"name"`
	Slug             string  `yaml:"slug"`
	CatalogNumber    *string `yaml:"catalogNumber"`
	Category         string  `yaml:"category"`
	ShortDescription string  `yaml:"shortDescription"`
	Description      string  `yaml:"description"`
	Components       *string `yaml:"components"`
	Procedure        *string `yaml:"procedure"`
	Specifications   *string `yaml:"specifications"`
	Troubleshooting  *string `yaml:"troubleshooting"`
	Image            string  `yaml:"image"`
	Featured         *bool   `yaml:"featured"`
}

type newsDoc struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Excerpt     string `yaml:"excerpt"`
	Content     string `yaml:"content"`
	Image       string `yaml:"image"`
	PublishedAt string `yaml:"publishedAt"`
}

// Load decodes and validates the embedded fixtures.
func Load() (Data, error) {
	return load(files)
}

func load(fsys fs.FS) (Data, error) {
	var products []productDoc
	if err := decode(fsys, "data/products.yaml", &products); err != nil {
		return Data{}, err
	}
	var news []newsDoc
	if err := decode(fsys, "data/news.yaml", &news); err != nil {
		return Data{}, err
	}

	out := Data{
		Products: make([]schema.InsertProduct, 0, len(products)),
		News:     make([]schema.InsertNews, 0, len(news)),
	}
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		in := schema.InsertProduct{
			Name:             p.Name,
			Slug:             p.Slug,
			CatalogNumber:    p.CatalogNumber,
			Category:         p.Category,
			ShortDescription: p.ShortDescription,
			Description:      p.Description,
			Components:       p.Components,
			Procedure:        p.Procedure,
			Specifications:   p.Specifications,
			Troubleshooting:  p.Troubleshooting,
			Image:            p.Image,
			Featured:         p.Featured,
		}
		if err := schema.ValidateInsertProduct(in); err != nil {
			return Data{}, fmt.Errorf("product %d: %w", i, err)
		}
		if seen[in.Slug] {
			return Data{}, fmt.Errorf("product %d: duplicate slug %q", i, in.Slug)
		}
		seen[in.Slug] = true
		out.Products = append(out.Products, in)
	}

	seen = make(map[string]bool, len(news))
	for i, n := range news {
		in := schema.InsertNews{
			Title:   n.Title,
			Slug:    n.Slug,
			Excerpt: n.Excerpt,
			Content: n.Content,
			Image:   n.Image,
		}
		if n.PublishedAt != "" {
			t, err := time.Parse(time.RFC3339, n.PublishedAt)
			if err != nil {
				return Data{}, fmt.Errorf("news %d: publishedAt: %w", i, err)
			}
			t = t.UTC()
			in.PublishedAt = &t
		}
		if err := schema.ValidateInsertNews(in); err != nil {
			return Data{}, fmt.Errorf("news %d: %w", i, err)
		}
		if seen[in.Slug] {
			return Data{}, fmt.Errorf("news %d: duplicate slug %q", i, in.Slug)
		}
		seen[in.Slug] = true
		out.News = append(out.News, in)
	}
	return out, nil
}

func decode(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
