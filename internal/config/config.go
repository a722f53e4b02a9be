package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMediaURL is the placeholder image for exercises saved without media.
const DefaultMediaURL = "https://placehold.co/600x400?text=FlexFit"

// ErrMissingJWTSecret is returned when JWT_SECRET is not configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string
	Port            string
	DatabaseURL     string
	JWTSecret       string
	JWTIssuer       string
	TokenTTL        time.Duration
	BcryptCost      int
	GinMode         string
	LogLevel        string
	DefaultMediaURL string
	ShutdownTimeout time.Duration
	AdminUsername   string
	AdminEmail      string
	AdminPassword   string
}

// LoadDotEnv reads a .env file into the process environment when present.
// Variables already set win over the file.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load 从环境变量读取应用配置，签名密钥之外的缺失项使用默认值。
func Load() (AppConfig, error) {
	port := getEnv("PORT", "8000")

	cfg := AppConfig{
		Port:            port,
		ListenAddr:      getEnv("LISTEN_ADDR", fmt.Sprintf(":%s", port)),
		DatabaseURL:     getEnv("DATABASE_URL", "flexfit.db"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTIssuer:       getEnv("JWT_ISSUER", "flexfit"),
		TokenTTL:        getDurationEnv("TOKEN_TTL", 30*time.Minute),
		BcryptCost:      getIntEnv("BCRYPT_COST", 10),
		GinMode:         getEnv("GIN_MODE", "release"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DefaultMediaURL: getEnv("DEFAULT_MEDIA_URL", DefaultMediaURL),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
		AdminUsername:   getEnv("ADMIN_USERNAME", ""),
		AdminEmail:      getEnv("ADMIN_EMAIL", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		return cfg, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
