package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string // "development" or "production"

	MongoURI string
	MongoDB  string
	RedisURL string

	AccessTokenSecret  string
	RefreshTokenSecret string
	ActivationSecret   string
	AccessTokenExpiry  time.Duration // short, minutes
	RefreshTokenExpiry time.Duration // long, days

	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string
	SMTPFrom     string

	CloudinaryURL string

	Origin string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := 5 * time.Minute
	if m := os.Getenv("ACCESS_TOKEN_EXPIRE"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil {
			accessExpiry = time.Duration(parsed) * time.Minute
		}
	}

	refreshExpiry := 3 * 24 * time.Hour
	if d := os.Getenv("REFRESH_TOKEN_EXPIRE"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil {
			refreshExpiry = time.Duration(parsed) * 24 * time.Hour
		}
	}

	smtpPort := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			smtpPort = parsed
		}
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("APP_ENV", "development"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getEnv("MONGO_DB", "lms"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		AccessTokenSecret:  getEnv("ACCESS_TOKEN", "access-secret-change-in-production"),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN", "refresh-secret-change-in-production"),
		ActivationSecret:   getEnv("JWT_SECRET_KEY", "activation-secret-change-in-production"),
		AccessTokenExpiry:  accessExpiry,
		RefreshTokenExpiry: refreshExpiry,
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           smtpPort,
		SMTPEmail:          getEnv("SMTP_EMAIL", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:           getEnv("SMTP_FROM_EMAIL", ""),
		CloudinaryURL:      getEnv("CLOUDINARY_URL", ""),
		Origin:             getEnv("ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
