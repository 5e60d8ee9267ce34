package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Dosada05/playground-standings/standings"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int
	LogLevel     slog.Level

	// Единственный администратор, который вносит результаты.
	AdminEmail        string
	AdminPasswordHash string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	// Cloudflare R2; публикация отключена, если не задано.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	Engine standings.Config
}

var ErrServerConfig = errors.New("server configuration incomplete")

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	rps := 10.0
	if s := os.Getenv("RATE_LIMIT_RPS"); s != "" {
		rps, err = strconv.ParseFloat(s, 64)
		if err != nil || rps <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_RPS must be a positive number, got %q", s)
		}
	}
	burst := 20
	if s := os.Getenv("RATE_LIMIT_BURST"); s != "" {
		burst, err = strconv.Atoi(s)
		if err != nil || burst <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer, got %q", s)
		}
	}

	origins := []string{"*"}
	if s := os.Getenv("CORS_ALLOWED_ORIGINS"); s != "" {
		origins = splitList(s)
	}

	engine := standings.DefaultConfig()
	if s := os.Getenv("QUALIFICATION_RULES"); s != "" {
		engine.Qualification, err = standings.ParseQualificationRules(s)
		if err != nil {
			return nil, fmt.Errorf("invalid QUALIFICATION_RULES: %w", err)
		}
	}
	if s := os.Getenv("BRACKET_LAYOUT"); s != "" {
		engine.Bracket, err = standings.ParseBracketLayout(s)
		if err != nil {
			return nil, fmt.Errorf("invalid BRACKET_LAYOUT: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		ServerPort:         port,
		LogLevel:           level,
		AdminEmail:         strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		CORSAllowedOrigins: origins,
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
		R2AccountID:        os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:    os.Getenv("R2_PUBLIC_BASE_URL"),
		Engine:             engine,
	}

	return cfg, nil
}

// ValidateServer checks the settings only the HTTP server needs.
func (c *Config) ValidateServer() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("%w: JWT_SECRET_KEY is not set", ErrServerConfig)
	}
	if c.AdminEmail == "" || c.AdminPasswordHash == "" {
		return fmt.Errorf("%w: ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required", ErrServerConfig)
	}
	return nil
}

// PublishingEnabled reports whether every R2 setting is present.
func (c *Config) PublishingEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
