package store

import (
	"time"

	"github.com/invirogens/website/internal/schema"
)

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// optionalString copies an optional input value; an empty string is stored as absent.
func optionalString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return cloneString(s)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneProduct(p schema.Product) schema.Product {
	p.CatalogNumber = cloneString(p.CatalogNumber)
	p.Components = cloneString(p.Components)
	p.Procedure = cloneString(p.Procedure)
	p.Specifications = cloneString(p.Specifications)
	p.Troubleshooting = cloneString(p.Troubleshooting)
	return p
}

func cloneNews(n schema.NewsArticle) schema.NewsArticle {
	n.PublishedAt = cloneTime(n.PublishedAt)
	return n
}

func cloneContact(c schema.ContactMessage) schema.ContactMessage {
	c.Company = cloneString(c.Company)
	return c
}
