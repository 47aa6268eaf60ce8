package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/invirogens/website/internal/schema"
)

// MemoryStore keeps products, news and contact messages in process memory.
// State is rebuilt from seed data on every start.
type MemoryStore struct {
	mu       sync.RWMutex
	products []schema.Product
	news     []schema.NewsArticle
	contacts []schema.ContactMessage

	productID int
	newsID    int
	contactID int

	now func() time.Time
}

// Option customises a MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the clock used to stamp contact messages.
func WithClock(now func() time.Time) Option {
	return func(m *MemoryStore) { m.now = now }
}

// NewMemoryStore loads the given seed payloads in order, assigning ids 1..N.
// A duplicated slug in the seed is rejected.
func NewMemoryStore(products []schema.InsertProduct, news []schema.InsertNews, opts ...Option) (*MemoryStore, error) {
	m := &MemoryStore{
		products:  make([]schema.Product, 0, len(products)),
		news:      make([]schema.NewsArticle, 0, len(news)),
		productID: 1,
		newsID:    1,
		contactID: 1,
		now:       time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	for i, p := range products {
		if _, err := m.CreateProduct(p); err != nil {
			return nil, fmt.Errorf("seed product %d (%s): %w", i, p.Slug, err)
		}
	}
	for i, n := range news {
		if _, err := m.CreateNews(n); err != nil {
			return nil, fmt.Errorf("seed news %d (%s): %w", i, n.Slug, err)
		}
	}
	return m, nil
}

func (m *MemoryStore) ListProducts() []schema.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]schema.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, cloneProduct(p))
	}
	return out
}

func (m *MemoryStore) GetProductBySlug(slug string) (*schema.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.Slug == slug {
			c := cloneProduct(p)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// CreateProduct expects a payload that already passed schema validation.
func (m *MemoryStore) CreateProduct(in schema.InsertProduct) (*schema.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Slug == in.Slug {
			return nil, ErrSlugExists
		}
	}
	p := schema.Product{
		ID:               m.productID,
		Name:             in.Name,
		Slug:             in.Slug,
		CatalogNumber:    optionalString(in.CatalogNumber),
		Category:         in.Category,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
		Components:       optionalString(in.Components),
		Procedure:        optionalString(in.Procedure),
		Specifications:   optionalString(in.Specifications),
		Troubleshooting:  optionalString(in.Troubleshooting),
		Image:            in.Image,
		Featured:         in.Featured != nil && *in.Featured,
	}
	m.productID++
	m.products = append(m.products, p)
	c := cloneProduct(p)
	return &c, nil
}

// ListNews returns articles oldest first. Articles without a publish date
// sort before dated ones; ties keep insertion order.
func (m *MemoryStore) ListNews() []schema.NewsArticle {
	m.mu.RLock()
	out := make([]schema.NewsArticle, 0, len(m.news))
	for _, n := range m.news {
		out = append(out, cloneNews(n))
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PublishedAt, out[j].PublishedAt
		if b == nil {
			return false
		}
		if a == nil {
			return true
		}
		return a.Before(*b)
	})
	return out
}

func (m *MemoryStore) GetNewsBySlug(slug string) (*schema.NewsArticle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.news {
		if n.Slug == slug {
			c := cloneNews(n)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// CreateNews expects a payload that already passed schema validation.
func (m *MemoryStore) CreateNews(in schema.InsertNews) (*schema.NewsArticle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.news {
		if n.Slug == in.Slug {
			return nil, ErrSlugExists
		}
	}
	n := schema.NewsArticle{
		ID:          m.newsID,
		Title:       in.Title,
		Slug:        in.Slug,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Image:       in.Image,
		PublishedAt: cloneTime(in.PublishedAt),
	}
	m.newsID++
	m.news = append(m.news, n)
	c := cloneNews(n)
	return &c, nil
}

// CreateContactMessage appends an audit record stamped with the current time.
func (m *MemoryStore) CreateContactMessage(in schema.InsertContact) *schema.ContactMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := schema.ContactMessage{
		ID:        m.contactID,
		Name:      in.Name,
		Email:     in.Email,
		Company:   optionalString(in.Company),
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: m.now().UTC(),
	}
	m.contactID++
	m.contacts = append(m.contacts, msg)
	c := cloneContact(msg)
	return &c
}

func (m *MemoryStore) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{Products: len(m.products), News: len(m.news), Contacts: len(m.contacts)}
}
