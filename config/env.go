package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"
)

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

// IsProduction reports whether APP_ENV (or the legacy ENV) is "production".
func IsProduction() bool {
	return getEnv("APP_ENV", os.Getenv("ENV")) == "production"
}

// Port returns the HTTP listen port.
func Port() string {
	return getEnv("PORT", "8081")
}

// ProductsPath is the storefront page that filter and sort links point at.
func ProductsPath() string {
	return getEnv("PRODUCTS_PATH", "/products")
}

// CORSOrigins returns the allowed browser origins.
func CORSOrigins() []string {
	raw := getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		Log.Sugar().Warnf("⚠️  %s=%q is not a valid duration, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// PageSize is the catalog's page size, used to compute pagination metadata.
func PageSize() int {
	raw := getEnv("CATALOG_PAGE_SIZE", "12")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		Log.Sugar().Warnf("⚠️  CATALOG_PAGE_SIZE=%q is not a positive integer, using 12", raw)
		return 12
	}
	return n
}

// JWTExpiry is the lifetime of storefront session tokens.
func JWTExpiry() time.Duration {
	return getDuration("JWT_EXPIRY", 24*time.Hour)
}

// CloudinaryCredentials returns the Cloudinary account used to deliver
// resized product images. An empty cloud name disables resizing.
func CloudinaryCredentials() (cloudName, apiKey, apiSecret string) {
	return getEnv("CLOUDINARY_CLOUD_NAME", ""), getEnv("CLOUDINARY_API_KEY", ""), getEnv("CLOUDINARY_API_SECRET", "")
}
