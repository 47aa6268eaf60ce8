package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/invirogens/website/internal/storage"
	"github.com/invirogens/website/pkg/logger"
)

// URLSigner issues short lived download URLs for media objects.
type URLSigner interface {
	PresignedURL(ctx context.Context, key string) (string, error)
}

// RegisterMedia redirects /media/<key> to a presigned object URL.
func RegisterMedia(r gin.IRouter, signer URLSigner) {
	r.GET("/media/*key", func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" || strings.Contains(key, "..") {
			c.JSON(http.StatusNotFound, gin.H{"message": "Media not found"})
			return
		}
		u, err := signer.PresignedURL(c.Request.Context(), key)
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Media not found"})
			return
		}
		if err != nil {
			logger.Errorf("presign media %q: %v", key, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch media"})
			return
		}
		c.Redirect(http.StatusFound, u)
	})
}
