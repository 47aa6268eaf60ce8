package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/invirogens/website/internal/schema"
	"github.com/invirogens/website/internal/store"
	"github.com/invirogens/website/pkg/logger"
)

// Relayer forwards a stored inquiry to the sales inbox.
type Relayer interface {
	Send(ctx context.Context, msg schema.InsertContact) error
}

// Options tune the public site routes.
type Options struct {
	// SiteURL is the canonical origin; when empty it is derived from the request.
	SiteURL string
	// SEOCacheTTL caches rendered sitemap and feed documents. Zero disables.
	// Caching applies only when SiteURL is set.
	SEOCacheTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// SiteHandler serves the catalog, news, contact and SEO routes.
type SiteHandler struct {
	store store.Store
	relay Relayer
	opts  Options
	docs  *cache.Cache
}

// NewSiteHandler wires the routes to a store; relay may be nil to only store inquiries.
func NewSiteHandler(st store.Store, relay Relayer, opts Options) *SiteHandler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	h := &SiteHandler{store: st, relay: relay, opts: opts}
	if opts.SEOCacheTTL > 0 && opts.SiteURL != "" {
		h.docs = cache.New(opts.SEOCacheTTL, 2*opts.SEOCacheTTL)
	}
	return h
}

// Register mounts every public route. contactMiddleware runs before POST /api/contact only.
func (h *SiteHandler) Register(r gin.IRouter, contactMiddleware ...gin.HandlerFunc) {
	api := r.Group("/api")
	api.GET("/products", h.ListProducts)
	api.GET("/products/:slug", h.GetProduct)
	api.GET("/news", h.ListNews)
	api.GET("/news/:slug", h.GetNews)
	api.POST("/contact", append(contactMiddleware, h.CreateContact)...)

	r.GET("/sitemap.xml", h.Sitemap)
	r.GET("/robots.txt", h.Robots)
	r.GET("/rss.xml", h.RSS)
}

func (h *SiteHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListProducts())
}

func (h *SiteHandler) GetProduct(c *gin.Context) {
	p, err := h.store.GetProductBySlug(c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	if err != nil {
		logger.Errorf("get product %q: %v", c.Param("slug"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *SiteHandler) ListNews(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListNews())
}

func (h *SiteHandler) GetNews(c *gin.Context) {
	n, err := h.store.GetNewsBySlug(c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}
	if err != nil {
		logger.Errorf("get article %q: %v", c.Param("slug"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch article"})
		return
	}
	c.JSON(http.StatusOK, n)
}
