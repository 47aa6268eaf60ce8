package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/invirogens/website/pkg/metrics"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL drops buckets of clients that stopped sending. A dropped
// bucket comes back full, which is what an idle bucket refills to anyway.
const limiterIdleTTL = 10 * time.Minute

// limiterStore keeps one token bucket per client key.
type limiterStore struct {
	limiters *cache.Cache // key -> *rate.Limiter
	rps      float64
	burst    int
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	return &limiterStore{
		limiters: cache.New(limiterIdleTTL, time.Minute),
		rps:      rps,
		burst:    burst,
	}
}

// get returns (and lazily creates) the limiter for key, refreshing its idle deadline.
func (s *limiterStore) get(key string) *rate.Limiter {
	if v, ok := s.limiters.Get(key); ok {
		l := v.(*rate.Limiter)
		s.limiters.Set(key, l, cache.DefaultExpiration)
		return l
	}
	l := rate.NewLimiter(rate.Limit(s.rps), s.burst)
	if err := s.limiters.Add(key, l, cache.DefaultExpiration); err != nil {
		// lost a race with another request for the same key
		if v, ok := s.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return l
}

func clientKey(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// RateLimitMiddleware returns a Gin middleware enforcing a token-bucket limit per client IP.
// rps = allowed events per second, burst = maximum tokens in bucket.
// The client IP comes from gin's ClientIP, so forwarding headers only count
// when the engine trusts the peer (see Engine.SetTrustedProxies).
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)
	return func(c *gin.Context) {
		if !store.get(clientKey(c)).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, please try again later"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
