package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Supabase storage
	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseStorageBucket  string

	// Coupon
	CouponCode            string
	CouponDiscountPerUnit float64

	// Razorpay
	RazorpayKeyID     string
	RazorpayKeySecret string

	// Gemini concierge
	GeminiAPIKey string
	GeminiModel  string

	// Cart persistence
	RedisURL       string
	CartTTLMinutes int

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
}

func Load() (*Config, error) {
	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "upaheart-pictures"),

		CouponCode:            getEnv("COUPON_CODE", ""),
		CouponDiscountPerUnit: getEnvFloat("COUPON_DISCOUNT_PER_UNIT", 300),

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		RedisURL:       getEnv("REDIS_URL", ""),
		CartTTLMinutes: getEnvInt("CART_TTL_MINUTES", 60*24),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceRoleKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if c.RazorpayKeyID == "" {
		return fmt.Errorf("RAZORPAY_KEY_ID is required")
	}
	if c.RazorpayKeySecret == "" {
		return fmt.Errorf("RAZORPAY_KEY_SECRET is required")
	}
	if c.CouponDiscountPerUnit < 0 {
		return fmt.Errorf("COUPON_DISCOUNT_PER_UNIT must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
