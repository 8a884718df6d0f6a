package http

import "github.com/khatabook/number-change-portal/internal/api/http/middleware"

type Config struct {
	Port           uint                       `mapstructure:"port"`
	AllowedOrigins []string                   `mapstructure:"allowed_origins"`
	MetricsAPIKey  string                     `mapstructure:"metrics_api_key"`
	LoginRateLimit middleware.RateLimitConfig `mapstructure:"login_rate_limit"`
}
