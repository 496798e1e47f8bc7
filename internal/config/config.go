package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP      HTTPConfig
	Postgres  PostgresConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	App       AppConfig
	Embedding EmbeddingConfig
	Ingest    IngestConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type HTTPConfig struct {
	Port           string
	AllowedOrigins []string
}

type PostgresConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseSSL   bool
}

type AppConfig struct {
	Name    string
	BaseURL string
}

type EmbeddingConfig struct {
	Provider  string // none, openai or gemini
	Model     string
	OpenAIKey string
	GeminiKey string
}

type IngestConfig struct {
	MaxUploadBytes int64
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type LogConfig struct {
	Level       string
	Development bool
}

var (
	ErrMissingPostgresURL = errors.New("POSTGRES_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("postgres_url", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_ttl", "60m")
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("smtp_from", "")
	v.SetDefault("smtp_from_name", "WhatsApp Links")
	v.SetDefault("smtp_use_ssl", false)
	v.SetDefault("app_name", "WhatsApp Links")
	v.SetDefault("app_base_url", "http://localhost:5173")
	v.SetDefault("embedding_provider", "none")
	v.SetDefault("embedding_model", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("ingest_max_upload_bytes", 10<<20)
	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)
}

// Load reads .env (when present) and the process environment and validates everything the
// HTTP server needs.
func Load() (*Config, error) {
	cfg := read()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStorage is Load for tools that only talk to the database and the embedding provider.
func LoadStorage() (*Config, error) {
	cfg := read()
	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:           v.GetString("port"),
			AllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		},
		Postgres: PostgresConfig{URL: v.GetString("postgres_url")},
		JWT: JWTConfig{
			Secret: v.GetString("jwt_secret"),
			TTL:    v.GetDuration("jwt_ttl"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("smtp_host"),
			Port:     v.GetInt("smtp_port"),
			Username: v.GetString("smtp_username"),
			Password: v.GetString("smtp_password"),
			From:     v.GetString("smtp_from"),
			FromName: v.GetString("smtp_from_name"),
			UseSSL:   v.GetBool("smtp_use_ssl"),
		},
		App: AppConfig{
			Name:    v.GetString("app_name"),
			BaseURL: v.GetString("app_base_url"),
		},
		Embedding: EmbeddingConfig{
			Provider:  strings.ToLower(v.GetString("embedding_provider")),
			Model:     v.GetString("embedding_model"),
			OpenAIKey: v.GetString("openai_api_key"),
			GeminiKey: v.GetString("gemini_api_key"),
		},
		Ingest:    IngestConfig{MaxUploadBytes: v.GetInt64("ingest_max_upload_bytes")},
		RateLimit: RateLimitConfig{RPS: v.GetFloat64("rate_limit_rps"), Burst: v.GetInt("rate_limit_burst")},
		Log: LogConfig{
			Level:       v.GetString("log_level"),
			Development: v.GetBool("log_development"),
		},
	}
	return cfg
}

func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWT.TTL)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Postgres.URL == "" {
		return ErrMissingPostgresURL
	}
	switch c.Embedding.Provider {
	case "", "none", "openai", "gemini":
	default:
		return fmt.Errorf("unknown EMBEDDING_PROVIDER %q", c.Embedding.Provider)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
