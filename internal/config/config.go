package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Storage drivers.
const (
	StorageREST     = "rest"
	StoragePostgres = "postgres"
)

// Cookie deployment profiles.
const (
	CookieSameOrigin  = "same-origin"
	CookieCrossOrigin = "cross-origin"
)

// Image host backends.
const (
	ImageHostCloudflare = "cloudflare"
	ImageHostS3         = "s3"
)


// Config holds runtime configuration sourced from env vars.
type Config struct {
	Env  string
	Port string

	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	PasswordResetRedirect  string
	ProviderTimeout        time.Duration

	StorageDriver string
	DatabaseURL   string
	AutoMigrate   bool
	ProfilesTable string
	EventsTable   string

	CookieProfile string
	CookieSecure  bool
	CookieDomain  string

	LoginEchoToken    bool
	ProfileProjection string
	CORSOrigins       []string
	AuthRateLimit     int

	ImageHost           string
	CloudflareAccountID string
	CloudflareAPIToken  string
	CloudflareAPIBase   string
	S3Endpoint          string
	S3AccessKey         string
	S3SecretKey         string
	S3Region            string
	S3Bucket            string
	S3UseSSL            bool
	S3PublicBaseURL     string
	UploadMaxBytes      int64

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	env := strings.ToLower(fallback(os.Getenv("APP_ENV"), "development"))
	cookieProfile := strings.ToLower(fallback(os.Getenv("COOKIE_PROFILE"), CookieSameOrigin))

	cfg := Config{
		Env:  env,
		Port: fallback(os.Getenv("PORT"), "3000"),

		SupabaseURL:            strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		SupabaseAnonKey:        strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
		SupabaseServiceRoleKey: strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_ROLE_KEY")),
		SupabaseJWTSecret:      strings.TrimSpace(os.Getenv("SUPABASE_JWT_SECRET")),
		PasswordResetRedirect:  fallback(os.Getenv("PASSWORD_RESET_REDIRECT_URL"), "http://localhost:5173/reset-password"),

		StorageDriver: strings.ToLower(fallback(os.Getenv("STORAGE_DRIVER"), StorageREST)),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AutoMigrate:   parseBool(os.Getenv("DB_AUTO_MIGRATE"), false),
		ProfilesTable: fallback(os.Getenv("PROFILES_TABLE"), "users"),
		EventsTable:   fallback(os.Getenv("EVENTS_TABLE"), "eventos"),

		CookieProfile: cookieProfile,
		CookieDomain:  strings.TrimSpace(os.Getenv("COOKIE_DOMAIN")),

		LoginEchoToken:    parseBool(os.Getenv("LOGIN_ECHO_TOKEN"), true),
		ProfileProjection: strings.ToLower(fallback(os.Getenv("PROFILE_PROJECTION"), "full")),
		CORSOrigins:       parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		AuthRateLimit:     parseInt(os.Getenv("AUTH_RATE_LIMIT_PER_MIN"), 20),

		ImageHost:           strings.ToLower(fallback(os.Getenv("IMAGE_HOST"), ImageHostCloudflare)),
		CloudflareAccountID: strings.TrimSpace(os.Getenv("CLOUDFLARE_ACCOUNT_ID")),
		CloudflareAPIToken:  strings.TrimSpace(os.Getenv("CLOUDFLARE_API_TOKEN")),
		CloudflareAPIBase:   strings.TrimRight(fallback(os.Getenv("CLOUDFLARE_API_BASE"), "https://api.cloudflare.com/client/v4"), "/"),
		S3Endpoint:          strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		S3AccessKey:         strings.TrimSpace(os.Getenv("S3_ACCESS_KEY")),
		S3SecretKey:         strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
		S3Region:            fallback(os.Getenv("S3_REGION"), "us-east-1"),
		S3Bucket:            fallback(os.Getenv("S3_BUCKET"), "uploads"),
		S3UseSSL:            parseBool(os.Getenv("S3_USE_SSL"), true),
		S3PublicBaseURL:     strings.TrimRight(strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")), "/"),
		UploadMaxBytes:      int64(parseInt(os.Getenv("UPLOAD_MAX_BYTES"), 10<<20)),

		LogLevel:  strings.ToLower(fallback(os.Getenv("LOG_LEVEL"), "info")),
		LogFormat: strings.ToLower(fallback(os.Getenv("LOG_FORMAT"), "console")),
	}

	// Cross-origin cookies are only accepted by browsers when Secure is set.
	defaultSecure := env == "production" || cookieProfile == CookieCrossOrigin
	cfg.CookieSecure = parseBool(os.Getenv("COOKIE_SECURE"), defaultSecure)

	timeout, err := time.ParseDuration(fallback(os.Getenv("PROVIDER_TIMEOUT"), "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_TIMEOUT: %w", err)
	}
	cfg.ProviderTimeout = timeout

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []string
	if c.SupabaseURL == "" {
		errs = append(errs, "SUPABASE_URL is required")
	}
	if c.SupabaseAnonKey == "" {
		errs = append(errs, "SUPABASE_ANON_KEY is required")
	}
	if c.SupabaseServiceRoleKey == "" {
		errs = append(errs, "SUPABASE_SERVICE_ROLE_KEY is required")
	}
	switch c.StorageDriver {
	case StorageREST:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		errs = append(errs, "STORAGE_DRIVER must be one of rest, postgres")
	}
	switch c.CookieProfile {
	case CookieSameOrigin:
	case CookieCrossOrigin:
		if !c.CookieSecure {
			errs = append(errs, "COOKIE_SECURE cannot be false with COOKIE_PROFILE=cross-origin")
		}
		if slices.Contains(c.CORSOrigins, "*") {
			errs = append(errs, "CORS_ALLOWED_ORIGINS must list explicit origins with COOKIE_PROFILE=cross-origin")
		}
	default:
		errs = append(errs, "COOKIE_PROFILE must be one of same-origin, cross-origin")
	}
	if c.ProfileProjection != "full" && c.ProfileProjection != "basic" {
		errs = append(errs, "PROFILE_PROJECTION must be one of full, basic")
	}
	switch c.ImageHost {
	case ImageHostCloudflare:
		if c.CloudflareAccountID == "" || c.CloudflareAPIToken == "" {
			errs = append(errs, "CLOUDFLARE_ACCOUNT_ID and CLOUDFLARE_API_TOKEN are required when IMAGE_HOST=cloudflare")
		}
	case ImageHostS3:
		if c.S3Endpoint == "" || c.S3AccessKey == "" || c.S3SecretKey == "" {
			errs = append(errs, "S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY are required when IMAGE_HOST=s3")
		}
	default:
		errs = append(errs, "IMAGE_HOST must be one of cloudflare, s3")
	}
	if c.AuthRateLimit <= 0 {
		errs = append(errs, "AUTH_RATE_LIMIT_PER_MIN must be > 0")
	}
	if c.UploadMaxBytes <= 0 {
		errs = append(errs, "UPLOAD_MAX_BYTES must be > 0")
	}
	if c.ProviderTimeout <= 0 {
		errs = append(errs, "PROVIDER_TIMEOUT must be > 0")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// IsProduction reports whether APP_ENV selects the production profile.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseBool(value string, def bool) bool {
	if strings.TrimSpace(value) == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return b
}

func parseInt(value string, def int) int {
	if strings.TrimSpace(value) == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return n
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
