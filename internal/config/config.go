package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Session   SessionConfig
	JWT       JWTConfig
	Log       LogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Intake    IntakeConfig
	Risk      RiskConfig
	Email     EmailConfig
	Export    ExportConfig
	Seed      SeedConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig selects the repository backend ("memory" or "postgres").
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig controls where authenticated identities are persisted.
type SessionConfig struct {
	Store string        `mapstructure:"store"`
	Key   string        `mapstructure:"key"`
	TTL   time.Duration `mapstructure:"ttl"`
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig bounds login attempts per client IP.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// CacheConfig holds in-process cache settings.
type CacheConfig struct {
	VillageTTL      time.Duration `mapstructure:"village_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// IntakeConfig holds report submission settings.
type IntakeConfig struct {
	SubmitTimeout time.Duration `mapstructure:"submit_timeout"`
}

// RiskConfig selects and tunes the village risk classifier.
type RiskConfig struct {
	Classifier       string  `mapstructure:"classifier"`
	MediumCaseRate   float64 `mapstructure:"medium_case_rate"`
	HighCaseRate     float64 `mapstructure:"high_case_rate"`
	CriticalCaseRate float64 `mapstructure:"critical_case_rate"`
}

// EmailConfig holds alert email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// ExportConfig controls archiving of dashboard exports to S3.
type ExportConfig struct {
	ArchiveEnabled bool   `mapstructure:"archive_enabled"`
	Region         string `mapstructure:"region"`
	Bucket         string `mapstructure:"bucket"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	PresignExpiry  int64  `mapstructure:"presign_expiry"`
}

// SeedConfig controls loading of the demo fixtures into the memory backend.
type SeedConfig struct {
	DemoData bool `mapstructure:"demo_data"`
}

// Load reads configuration from environment variables with the HEALTHMON_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("HEALTHMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "healthmon")
	v.SetDefault("db.password", "healthmon_secret")
	v.SetDefault("db.name", "healthmon_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	v.SetDefault("storage.driver", "memory")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.store", "memory")
	v.SetDefault("session.key", "health_monitor_user")
	v.SetDefault("session.ttl", "168h")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "healthmon")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:8080")

	v.SetDefault("rate_limit.requests", 10)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("cache.village_ttl", "5m")
	v.SetDefault("cache.cleanup_interval", "10m")

	v.SetDefault("intake.submit_timeout", "10s")

	v.SetDefault("risk.classifier", "stored")
	v.SetDefault("risk.medium_case_rate", 1.0)
	v.SetDefault("risk.high_case_rate", 5.0)
	v.SetDefault("risk.critical_case_rate", 15.0)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "alerts@healthmon.local")
	v.SetDefault("email.from_name", "Health Monitor")
	v.SetDefault("email.frontend_url", "http://localhost:5173")

	v.SetDefault("export.archive_enabled", false)
	v.SetDefault("export.region", "ap-south-1")
	v.SetDefault("export.bucket", "healthmon-exports")
	v.SetDefault("export.endpoint", "")
	v.SetDefault("export.presign_expiry", 3600)

	v.SetDefault("seed.demo_data", true)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "HEALTHMON_SERVER_PORT",
		"server.read_timeout":      "HEALTHMON_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "HEALTHMON_SERVER_WRITE_TIMEOUT",
		"server.environment":       "HEALTHMON_SERVER_ENVIRONMENT",
		"db.host":                  "HEALTHMON_DB_HOST",
		"db.port":                  "HEALTHMON_DB_PORT",
		"db.user":                  "HEALTHMON_DB_USER",
		"db.password":              "HEALTHMON_DB_PASSWORD",
		"db.name":                  "HEALTHMON_DB_NAME",
		"db.sslmode":               "HEALTHMON_DB_SSLMODE",
		"db.max_open":              "HEALTHMON_DB_MAX_OPEN",
		"db.max_idle":              "HEALTHMON_DB_MAX_IDLE",
		"storage.driver":           "HEALTHMON_STORAGE_DRIVER",
		"redis.addr":               "HEALTHMON_REDIS_ADDR",
		"redis.password":           "HEALTHMON_REDIS_PASSWORD",
		"redis.db":                 "HEALTHMON_REDIS_DB",
		"session.store":            "HEALTHMON_SESSION_STORE",
		"session.key":              "HEALTHMON_SESSION_KEY",
		"session.ttl":              "HEALTHMON_SESSION_TTL",
		"jwt.secret":               "HEALTHMON_JWT_SECRET",
		"jwt.access_expiry":        "HEALTHMON_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":       "HEALTHMON_JWT_REFRESH_EXPIRY",
		"jwt.issuer":               "HEALTHMON_JWT_ISSUER",
		"log.level":                "HEALTHMON_LOG_LEVEL",
		"log.format":               "HEALTHMON_LOG_FORMAT",
		"cors.allowed_origins":     "HEALTHMON_CORS_ALLOWED_ORIGINS",
		"rate_limit.requests":      "HEALTHMON_RATE_LIMIT_REQUESTS",
		"rate_limit.window":        "HEALTHMON_RATE_LIMIT_WINDOW",
		"cache.village_ttl":        "HEALTHMON_CACHE_VILLAGE_TTL",
		"cache.cleanup_interval":   "HEALTHMON_CACHE_CLEANUP_INTERVAL",
		"intake.submit_timeout":    "HEALTHMON_INTAKE_SUBMIT_TIMEOUT",
		"risk.classifier":          "HEALTHMON_RISK_CLASSIFIER",
		"risk.medium_case_rate":    "HEALTHMON_RISK_MEDIUM_CASE_RATE",
		"risk.high_case_rate":      "HEALTHMON_RISK_HIGH_CASE_RATE",
		"risk.critical_case_rate":  "HEALTHMON_RISK_CRITICAL_CASE_RATE",
		"email.provider":           "HEALTHMON_EMAIL_PROVIDER",
		"email.region":             "HEALTHMON_EMAIL_REGION",
		"email.from_address":       "HEALTHMON_EMAIL_FROM_ADDRESS",
		"email.from_name":          "HEALTHMON_EMAIL_FROM_NAME",
		"email.frontend_url":       "HEALTHMON_EMAIL_FRONTEND_URL",
		"export.archive_enabled":   "HEALTHMON_EXPORT_ARCHIVE_ENABLED",
		"export.region":            "HEALTHMON_EXPORT_REGION",
		"export.bucket":            "HEALTHMON_EXPORT_BUCKET",
		"export.endpoint":          "HEALTHMON_EXPORT_ENDPOINT",
		"export.access_key":        "HEALTHMON_EXPORT_ACCESS_KEY",
		"export.secret_key":        "HEALTHMON_EXPORT_SECRET_KEY",
		"export.presign_expiry":    "HEALTHMON_EXPORT_PRESIGN_EXPIRY",
		"seed.demo_data":           "HEALTHMON_SEED_DEMO_DATA",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if HEALTHMON_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HEALTHMON_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Storage = StorageConfig{Driver: v.GetString("storage.driver")}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
	cfg.Session = SessionConfig{
		Store: v.GetString("session.store"),
		Key:   v.GetString("session.key"),
		TTL:   v.GetDuration("session.ttl"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{AllowedOrigins: splitList(v.GetString("cors.allowed_origins"))}
	cfg.RateLimit = RateLimitConfig{
		Requests: v.GetInt("rate_limit.requests"),
		Window:   v.GetDuration("rate_limit.window"),
	}
	cfg.Cache = CacheConfig{
		VillageTTL:      v.GetDuration("cache.village_ttl"),
		CleanupInterval: v.GetDuration("cache.cleanup_interval"),
	}
	cfg.Intake = IntakeConfig{SubmitTimeout: v.GetDuration("intake.submit_timeout")}
	cfg.Risk = RiskConfig{
		Classifier:       v.GetString("risk.classifier"),
		MediumCaseRate:   v.GetFloat64("risk.medium_case_rate"),
		HighCaseRate:     v.GetFloat64("risk.high_case_rate"),
		CriticalCaseRate: v.GetFloat64("risk.critical_case_rate"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Export = ExportConfig{
		ArchiveEnabled: v.GetBool("export.archive_enabled"),
		Region:         v.GetString("export.region"),
		Bucket:         v.GetString("export.bucket"),
		Endpoint:       v.GetString("export.endpoint"),
		AccessKey:      v.GetString("export.access_key"),
		SecretKey:      v.GetString("export.secret_key"),
		PresignExpiry:  v.GetInt64("export.presign_expiry"),
	}
	cfg.Seed = SeedConfig{DemoData: v.GetBool("seed.demo_data")}

	if cfg.Server.IsProduction() && cfg.JWT.Secret == "change-me-in-production" {
		return nil, fmt.Errorf("HEALTHMON_JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
