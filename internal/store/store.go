package store

import (
	"errors"

	"github.com/invirogens/website/internal/schema"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrSlugExists = errors.New("slug already exists")
)

// Store is the content repository consumed by the route layer.
// Every value it returns is a copy the caller may freely modify.
type Store interface {
	ListProducts() []schema.Product
	GetProductBySlug(slug string) (*schema.Product, error)
	CreateProduct(in schema.InsertProduct) (*schema.Product, error)

	ListNews() []schema.NewsArticle
	GetNewsBySlug(slug string) (*schema.NewsArticle, error)
	CreateNews(in schema.InsertNews) (*schema.NewsArticle, error)

	CreateContactMessage(in schema.InsertContact) *schema.ContactMessage

	Stats() Stats
}

// Stats reports collection sizes.
type Stats struct {
	Products int `json:"products"`
	News     int `json:"news"`
	Contacts int `json:"contacts"`
}
