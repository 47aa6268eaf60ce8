package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/invirogens/website/internal/sitemap"
	"github.com/invirogens/website/pkg/logger"
)

func (h *SiteHandler) Sitemap(c *gin.Context) {
	origin := h.origin(c)
	body, err := h.cached("sitemap", func() ([]byte, error) {
		return sitemap.Generate(origin, h.store.ListProducts(), h.store.ListNews(), h.opts.Now())
	})
	if err != nil {
		logger.Errorf("generate sitemap: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate sitemap"})
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (h *SiteHandler) RSS(c *gin.Context) {
	origin := h.origin(c)
	body, err := h.cached("rss", func() ([]byte, error) {
		return sitemap.RSS(origin, h.store.ListNews(), h.opts.Now())
	})
	if err != nil {
		logger.Errorf("generate feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate feed"})
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}

func (h *SiteHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, sitemap.Robots(h.origin(c)))
}

// cached is a no-op unless SiteURL is set, so request headers never pick the key.
func (h *SiteHandler) cached(key string, render func() ([]byte, error)) ([]byte, error) {
	if h.docs == nil {
		return render()
	}
	if v, ok := h.docs.Get(key); ok {
		return v.([]byte), nil
	}
	body, err := render()
	if err != nil {
		return nil, err
	}
	h.docs.Set(key, body, cache.DefaultExpiration)
	return body, nil
}

// origin is the configured site URL, else scheme and host of the request.
func (h *SiteHandler) origin(c *gin.Context) string {
	if h.opts.SiteURL != "" {
		return h.opts.SiteURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme = strings.TrimSpace(strings.Split(p, ",")[0])
	}
	return scheme + "://" + c.Request.Host
}
