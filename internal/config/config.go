package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env  string
	Port int

	DatabaseURL      string
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	JWTSecret string
	TokenTTL  time.Duration

	// 通知メール
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	AppName      string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load は環境変数から設定を読む。必須項目が無ければエラー。
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "development"),
		Port:             getEnvInt("PORT", 8080),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTL:         time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		SMTPHost:         getEnv("SMTP_HOST", "localhost"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		MailFrom:         getEnv("MAIL_FROM", "noreply@cosmeshop.example"),
		AppName:          getEnv("APP_NAME", "CosmeShop"),
		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 40),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" && (cfg.PostgresUser == "" || cfg.PostgresDB == "") {
		return Config{}, fmt.Errorf("DATABASE_URL or POSTGRES_USER/POSTGRES_DB is required")
	}

	return cfg, nil
}

func (c Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
