package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	SMTP      SMTPConfig
	Relay     RelayConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	MinIO     MinIOConfig
	SEO       SEOConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// SiteURL overrides the origin used in sitemap, robots and feed links.
	SiteURL string
	// TrustedProxies lists the proxy IPs/CIDRs whose forwarding headers are
	// believed. Empty trusts none and keys clients by the TCP peer.
	TrustedProxies []string
}

type LogConfig struct {
	Level string
	File  string
}

// SMTPConfig is used when URL is set, or when both Host and Port are set.
type SMTPConfig struct {
	URL  string
	Host string
	Port int
	User string
	Pass string
	From string
}

func (c SMTPConfig) Enabled() bool {
	return c.URL != "" || (c.Host != "" && c.Port != 0)
}

type RelayConfig struct {
	InquiryTo          string
	FormSubmitEmail    string
	Web3FormsAccessKey string
	Web3FormsEndpoint  string
	FormSubmitEndpoint string
	Timeout            time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type RateLimitConfig struct {
	Enabled  bool
	RPS      float64
	Burst    int
	UseRedis bool
	Window   time.Duration
}

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	URLTTL    time.Duration
}

type SEOConfig struct {
	// CacheTTL of zero disables caching of rendered documents.
	CacheTTL time.Duration
}

const (
	DefaultSMTPFrom           = "INVIROGENS Inquiry <no-reply@invirogens.site>"
	DefaultInquiryTo          = "sales@invirogens.site"
	DefaultWeb3FormsEndpoint  = "https://api.web3forms.com/submit"
	DefaultFormSubmitEndpoint = "https://formsubmit.co/ajax"
)

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SMTP_FROM", DefaultSMTPFrom)
	viper.SetDefault("INQUIRY_TO_EMAIL", DefaultInquiryTo)
	viper.SetDefault("WEB3FORMS_ENDPOINT", DefaultWeb3FormsEndpoint)
	viper.SetDefault("FORMSUBMIT_ENDPOINT", DefaultFormSubmitEndpoint)
	viper.SetDefault("RELAY_TIMEOUT_SECONDS", 15)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 0.2)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("MINIO_BUCKET", "invirogens-media")
	viper.SetDefault("MEDIA_URL_TTL_MINUTES", 15)
	viper.SetDefault("SEO_CACHE_SECONDS", 300)

	smtpPort, err := parsePort(viper.GetString("SMTP_PORT"))
	if err != nil {
		return nil, err
	}

	inquiryTo := viper.GetString("INQUIRY_TO_EMAIL")
	formSubmitEmail := viper.GetString("FORMSUBMIT_EMAIL")
	if formSubmitEmail == "" {
		formSubmitEmail = inquiryTo
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Host:           viper.GetString("SERVER_HOST"),
			Environment:    viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			SiteURL:        strings.TrimRight(viper.GetString("SITE_URL"), "/"),
			TrustedProxies: splitList(viper.GetString("TRUSTED_PROXIES")),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
			File:  viper.GetString("LOG_FILE"),
		},
		SMTP: SMTPConfig{
			URL:  viper.GetString("SMTP_URL"),
			Host: viper.GetString("SMTP_HOST"),
			Port: smtpPort,
			User: viper.GetString("SMTP_USER"),
			Pass: viper.GetString("SMTP_PASS"),
			From: viper.GetString("SMTP_FROM"),
		},
		Relay: RelayConfig{
			InquiryTo:          inquiryTo,
			FormSubmitEmail:    formSubmitEmail,
			Web3FormsAccessKey: viper.GetString("WEB3FORMS_ACCESS_KEY"),
			Web3FormsEndpoint:  viper.GetString("WEB3FORMS_ENDPOINT"),
			FormSubmitEndpoint: strings.TrimRight(viper.GetString("FORMSUBMIT_ENDPOINT"), "/"),
			Timeout:            time.Duration(viper.GetInt("RELAY_TIMEOUT_SECONDS")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled:  viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:      viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:    viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis: viper.GetBool("RATE_LIMIT_USE_REDIS"),
			Window:   time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			URLTTL:    time.Duration(viper.GetInt("MEDIA_URL_TTL_MINUTES")) * time.Minute,
		},
		SEO: SEOConfig{
			CacheTTL: time.Duration(viper.GetInt("SEO_CACHE_SECONDS")) * time.Second,
		},
	}

	if cfg.RateLimit.UseRedis && cfg.Redis.Host == "" {
		return nil, fmt.Errorf("RATE_LIMIT_USE_REDIS requires REDIS_HOST")
	}

	return cfg, nil
}

// splitList parses a comma separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePort(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("SMTP_PORT must be a valid number, got %q", raw)
	}
	return port, nil
}
