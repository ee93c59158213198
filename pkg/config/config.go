package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Programs ProgramsConfig
	Checkout CheckoutConfig
	Delivery DeliveryConfig
	Exports  ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig verifies bearer tokens minted by the external identity provider.
type AuthConfig struct {
	Enabled  bool
	Secret   string
	Audience string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ProgramsConfig governs the study program store and catalog response cache.
type ProgramsConfig struct {
	StoreTTL        time.Duration
	CatalogCacheTTL time.Duration
}

// CheckoutConfig gates the paid checkout flow in front of program generation.
type CheckoutConfig struct {
	Enabled        bool
	Currency       string
	PriceCents     int64
	WebhookSecret  string
	PaymentBaseURL string
}

// DeliveryConfig controls async PDF/ICS rendering and email notification.
type DeliveryConfig struct {
	Enabled           bool
	FromName          string
	FromEmail         string
	SendgridAPIKey    string
	PublicBaseURL     string
	WorkerConcurrency int
	WorkerRetries     int
}

// ExportsConfig controls artifact storage and signed download links.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		Enabled:  v.GetBool("AUTH_ENABLED"),
		Secret:   v.GetString("AUTH_JWT_SECRET"),
		Audience: v.GetString("AUTH_JWT_AUDIENCE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Programs = ProgramsConfig{
		StoreTTL:        parseDuration(v.GetString("PROGRAM_STORE_TTL"), 90*24*time.Hour),
		CatalogCacheTTL: parseDuration(v.GetString("CATALOG_CACHE_TTL"), time.Hour),
	}

	cfg.Checkout = CheckoutConfig{
		Enabled:        v.GetBool("ENABLE_CHECKOUT"),
		Currency:       v.GetString("CHECKOUT_CURRENCY"),
		PriceCents:     v.GetInt64("CHECKOUT_PRICE_CENTS"),
		WebhookSecret:  v.GetString("CHECKOUT_WEBHOOK_SECRET"),
		PaymentBaseURL: v.GetString("CHECKOUT_PAYMENT_BASE_URL"),
	}

	cfg.Delivery = DeliveryConfig{
		Enabled:           v.GetBool("ENABLE_DELIVERY"),
		FromName:          v.GetString("DELIVERY_FROM_NAME"),
		FromEmail:         v.GetString("DELIVERY_FROM_EMAIL"),
		SendgridAPIKey:    v.GetString("SENDGRID_API_KEY"),
		PublicBaseURL:     v.GetString("PUBLIC_BASE_URL"),
		WorkerConcurrency: v.GetInt("DELIVERY_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("DELIVERY_WORKER_RETRIES"),
	}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 7*24*time.Hour),
		CleanupInterval: parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "studycal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("AUTH_JWT_SECRET", "dev_secret")
	v.SetDefault("AUTH_JWT_AUDIENCE", "authenticated")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PROGRAM_STORE_TTL", "2160h")
	v.SetDefault("CATALOG_CACHE_TTL", "1h")

	v.SetDefault("ENABLE_CHECKOUT", false)
	v.SetDefault("CHECKOUT_CURRENCY", "TRY")
	v.SetDefault("CHECKOUT_PRICE_CENTS", 19900)
	v.SetDefault("CHECKOUT_WEBHOOK_SECRET", "dev_webhook_secret")
	v.SetDefault("CHECKOUT_PAYMENT_BASE_URL", "http://localhost:8080")

	v.SetDefault("ENABLE_DELIVERY", false)
	v.SetDefault("DELIVERY_FROM_NAME", "StudyCal")
	v.SetDefault("DELIVERY_FROM_EMAIL", "plans@studycal.app")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("DELIVERY_WORKER_CONCURRENCY", 1)
	v.SetDefault("DELIVERY_WORKER_RETRIES", 3)

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "168h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
