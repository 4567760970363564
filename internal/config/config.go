package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisURL string

	JWTSecret string
	TokenTTL  time.Duration

	OTPTTL          time.Duration
	OTPSendInterval time.Duration

	ResendAPIKey string
	MailFrom     string

	CloudinaryUploadFolder string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "5000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: os.Getenv("DB_PASS"),
		DBName: getEnv("DB_NAME", "educonnect"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     getEnv("MAIL_FROM", "EduConnect <onboarding@resend.dev>"),

		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "educonnect_profiles"),
	}

	var err error
	cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "2h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.OTPTTL, err = time.ParseDuration(getEnv("OTP_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_TTL: %w", err)
	}
	cfg.OTPSendInterval, err = time.ParseDuration(getEnv("OTP_SEND_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_SEND_INTERVAL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
