package schema

import "time"

// Product is a catalog item served by the public product pages.
// Optional text fields are nil when absent and serialize as JSON null.
type Product struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	CatalogNumber    *string `json:"catalogNumber"`
	Category         string  `json:"category"`
	ShortDescription string  `json:"shortDescription"`
	Description      string  `json:"description"`
	Components       *string `json:"components"`
	Procedure        *string `json:"procedure"`
	Specifications   *string `json:"specifications"`
	Troubleshooting  *string `json:"troubleshooting"`
	Image            string  `json:"image"`
	Featured         bool    `json:"featured"`
}

// InsertProduct is the write payload for a new product.
type InsertProduct struct {
	Name             string  `json:"name" validate:"required"`
	Slug             string  `json:"slug" validate:"required"`
	CatalogNumber    *string `json:"catalogNumber"`
	Category         string  `json:"category" validate:"required"`
	ShortDescription string  `json:"shortDescription" validate:"required"`
	Description      string  `json:"description" validate:"required"`
	Components       *string `json:"components"`
	Procedure        *string `json:"procedure"`
	Specifications   *string `json:"specifications"`
	Troubleshooting  *string `json:"troubleshooting"`
	Image            string  `json:"image" validate:"required"`
	Featured         *bool   `json:"featured"`
}

// NewsArticle is a dated company announcement.
type NewsArticle struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Image       string     `json:"image"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// InsertNews is the write payload for a new article.
type InsertNews struct {
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug" validate:"required"`
	Excerpt     string     `json:"excerpt" validate:"required"`
	Content     string     `json:"content" validate:"required"`
	Image       string     `json:"image" validate:"required"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// ContactMessage is the audit record of an inquiry sent through the contact form.
type ContactMessage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   *string   `json:"company"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// InsertContact is the body accepted by POST /api/contact.
type InsertContact struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Company *string `json:"company"`
	Subject string  `json:"subject" validate:"required"`
	Message string  `json:"message" validate:"required"`
}
