package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invirogens/website/internal/store"
)

// Check pings an optional dependency for readiness.
type Check func(ctx context.Context) error

// RegisterHealth mounts /health and /ready. channel names the active relay channel.
func RegisterHealth(r gin.IRouter, st store.Store, channel string, checks map[string]Check) {
	started := time.Now()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		deps := map[string]bool{"store": st != nil}
		for name, check := range checks {
			ok := check(ctx) == nil
			deps[name] = ok
			ready = ready && ok
		}
		if st == nil {
			ready = false
		}

		body := gin.H{"deps": deps, "relay": channel, "uptime": time.Since(started).Round(time.Second).String()}
		if st != nil {
			body["content"] = st.Stats()
		}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	})
}
