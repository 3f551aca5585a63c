package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	Env           string
	DBUrl         string
	StorageDriver string // "postgres" or "memory"
	// Auth
	JWTSecret string
	JWTTTL    time.Duration
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Image storage (S3-compatible)
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
	ImageBaseURL      string
	// Verification codes
	VerificationCodeTTL   time.Duration
	VerificationPurgeSpec string
	// Rate Limiting Configuration
	RateLimitWindowSeconds int
	RateLimitAuthThreshold int
	// Image uploads per caller and minute
	RateLimitUploadThreshold int
	// Pagination
	DefaultPageSize int
	MaxPageSize     int
	// CORS
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments pass plain environment variables
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORAGE_DRIVER", "postgres")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("SMTP_FROM_EMAIL", "noreply@pickme.dev")
	v.SetDefault("S3_REGION", "ap-northeast-2")
	v.SetDefault("IMAGE_BASE_URL", "http://localhost:8080/api/images")
	v.SetDefault("VERIFICATION_CODE_TTL", "10m")
	v.SetDefault("VERIFICATION_PURGE_SPEC", "@every 30m")
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("RATE_LIMIT_AUTH_THRESHOLD", 10)
	v.SetDefault("RATE_LIMIT_UPLOAD_THRESHOLD", 10)
	v.SetDefault("DEFAULT_PAGE_SIZE", 20)
	v.SetDefault("MAX_PAGE_SIZE", 100)

	cfg := &Config{
		Port:                     v.GetString("PORT"),
		Env:                      v.GetString("APP_ENV"),
		DBUrl:                    v.GetString("DATABASE_URL"),
		StorageDriver:            strings.ToLower(v.GetString("STORAGE_DRIVER")),
		JWTSecret:                v.GetString("JWT_SECRET"),
		JWTTTL:                   v.GetDuration("JWT_TTL"),
		RedisURL:                 v.GetString("REDIS_URL"),
		RedisPassword:            v.GetString("REDIS_PASSWORD"),
		SMTPHost:                 v.GetString("SMTP_HOST"),
		SMTPPort:                 v.GetString("SMTP_PORT"),
		SMTPUsername:             v.GetString("SMTP_USERNAME"),
		SMTPPassword:             v.GetString("SMTP_PASSWORD"),
		SMTPFromEmail:            v.GetString("SMTP_FROM_EMAIL"),
		S3Region:                 v.GetString("S3_REGION"),
		S3Bucket:                 v.GetString("S3_BUCKET"),
		S3AccessKeyID:            v.GetString("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey:        v.GetString("S3_SECRET_ACCESS_KEY"),
		S3Endpoint:               v.GetString("S3_ENDPOINT"),
		ImageBaseURL:             strings.TrimRight(v.GetString("IMAGE_BASE_URL"), "/"),
		VerificationCodeTTL:      v.GetDuration("VERIFICATION_CODE_TTL"),
		VerificationPurgeSpec:    v.GetString("VERIFICATION_PURGE_SPEC"),
		RateLimitWindowSeconds:   v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		RateLimitAuthThreshold:   v.GetInt("RATE_LIMIT_AUTH_THRESHOLD"),
		RateLimitUploadThreshold: v.GetInt("RATE_LIMIT_UPLOAD_THRESHOLD"),
		DefaultPageSize:          v.GetInt("DEFAULT_PAGE_SIZE"),
		MaxPageSize:              v.GetInt("MAX_PAGE_SIZE"),
		AllowedOrigins:           splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Warnings lists configuration gaps that degrade features without preventing startup.
func (c *Config) Warnings() []string {
	var w []string
	if c.StorageDriver == "postgres" && c.DBUrl == "" {
		w = append(w, "DATABASE_URL is missing. Application may fail to connect.")
	}
	if c.JWTSecret == "" {
		w = append(w, "JWT_SECRET is missing. Tokens are signed with an empty key.")
	}
	if c.RedisURL == "" {
		w = append(w, "REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if c.S3Bucket == "" {
		w = append(w, "S3_BUCKET not configured. Image upload is disabled.")
	}
	return w
}
