package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"trainerhub/internal/pkg/logger"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultDatabaseURL    = "trainerhub.db"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTTTL         = "24h"
	defaultUploadDir      = "./uploads"
	defaultStaticURLBase  = "/static/uploads"
	defaultCheckoutURL    = "https://checkout.example.com/pay"
	defaultCheckoutSecret = "change-me-checkout-secret"
	defaultCommissionRate = "0.15"
	defaultLogLevel       = "info"
	defaultPublicURL      = "http://localhost:5173"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	DatabaseURL    string
	JWTSecret      string
	JWTTTL         time.Duration
	AllowedOrigins []string
	PublicURL      string

	UploadDir     string
	StaticURLBase string

	CheckoutBaseURL  string
	CheckoutMerchant string
	CheckoutSecret   string

	DefaultCommissionRate float64

	Log logger.Settings
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.StaticURLBase = strings.TrimRight(strings.TrimSpace(getEnv("STATIC_URL_BASE", defaultStaticURLBase)), "/")
	cfg.CheckoutBaseURL = strings.TrimSpace(getEnv("CHECKOUT_BASE_URL", defaultCheckoutURL))
	cfg.CheckoutMerchant = strings.TrimSpace(getEnv("CHECKOUT_MERCHANT", "trainerhub"))
	cfg.CheckoutSecret = strings.TrimSpace(getEnv("CHECKOUT_SECRET", defaultCheckoutSecret))
	cfg.PublicURL = strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_URL", defaultPublicURL)), "/")
	cfg.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.DefaultCommissionRate, err = parseFloatEnv("DEFAULT_COMMISSION_RATE", defaultCommissionRate)
	if err != nil {
		return nil, err
	}

	cfg.Log = logger.Settings{
		Level:    strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))),
		FilePath: strings.TrimSpace(os.Getenv("LOG_FILE")),
	}
	if cfg.Log.MaxSizeMB, err = parseIntEnv("LOG_MAX_SIZE_MB", "50"); err != nil {
		return nil, err
	}
	if cfg.Log.MaxBackups, err = parseIntEnv("LOG_MAX_BACKUPS", "5"); err != nil {
		return nil, err
	}
	if cfg.Log.MaxAgeDays, err = parseIntEnv("LOG_MAX_AGE_DAYS", "30"); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s db=%s", cfg.AppEnv, cfg.HTTPAddr, redactDSN(cfg.DatabaseURL))

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.DefaultCommissionRate < 0 || cfg.DefaultCommissionRate > 0.5 {
		return fmt.Errorf("DEFAULT_COMMISSION_RATE must be within [0, 0.5]")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if err := cfg.Log.Validate(); err != nil {
		return err
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.CheckoutSecret, defaultCheckoutSecret) {
			return fmt.Errorf("in prod/release CHECKOUT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres") {
			return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func redactDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
