package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/invirogens/website/handlers"
	"github.com/invirogens/website/internal/config"
	"github.com/invirogens/website/internal/relay"
	"github.com/invirogens/website/internal/seed"
	"github.com/invirogens/website/internal/storage"
	"github.com/invirogens/website/internal/store"
	"github.com/invirogens/website/pkg/logger"
	"github.com/invirogens/website/pkg/metrics"
	"github.com/invirogens/website/pkg/middleware"
)

func main() {
	// initialize logging early (LOG_LEVEL env: debug|info|warn|error|fatal); config may refine it
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.UseFile(cfg.Log.File)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	data, err := seed.Load()
	if err != nil {
		logger.Fatalf("failed to load seed data: %v", err)
	}
	st, err := store.NewMemoryStore(data.Products, data.News)
	if err != nil {
		logger.Fatalf("failed to initialise store: %v", err)
	}
	stats := st.Stats()
	logger.Infof("store loaded: products=%d news=%d", stats.Products, stats.News)

	rl, err := relay.FromConfig(cfg)
	if err != nil {
		logger.Fatalf("failed to configure contact relay: %v", err)
	}
	channel := "none"
	if ch := rl.Active(); ch != nil {
		channel = ch.Name()
	}
	logger.Infof("contact relay channel: %s", channel)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Fatalf("invalid TRUSTED_PROXIES: %v", err)
	}
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.CORS())

	checks := map[string]handlers.Check{}

	// Redis only backs the contact rate limiter
	var redisClient *redis.Client
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = redisClient.Close() }()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", cfg.Redis.Addr(), err)
		} else {
			logger.Infof("connected to Redis for rate limiting: %s", cfg.Redis.Addr())
		}
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	var contactLimit []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if redisClient != nil {
			contactLimit = append(contactLimit, middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Window))
		} else {
			contactLimit = append(contactLimit, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	if cfg.MinIO.Endpoint != "" {
		media, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			logger.Warnf("media storage unavailable, /media disabled: %v", err)
		} else {
			handlers.RegisterMedia(r, media)
			checks["media"] = media.Ping
			logger.Infof("serving media from bucket %s", cfg.MinIO.Bucket)
		}
	}

	site := handlers.NewSiteHandler(st, rl, handlers.Options{
		SiteURL:     cfg.Server.SiteURL,
		SEOCacheTTL: cfg.SEO.CacheTTL,
	})
	site.Register(r, contactLimit...)
	handlers.RegisterHealth(r, st, channel, checks)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("serving on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
