package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (identity provider)
	JWTSecret       string
	JWTAccessExpiry time.Duration

	// Registration
	ClientURL      string
	DefaultLinkTTL time.Duration

	// SMTP
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Google Sheets
	SpreadsheetID   string
	CredentialsFile string
	SheetRange      string
	CacheFile       string
	CacheTTL        time.Duration

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "adjudication_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: parseDuration(getEnv("JWT_ACCESS_EXPIRY", "1h"), time.Hour),

		ClientURL:      getEnv("CLIENT_URL", "http://localhost:5173"),
		DefaultLinkTTL: parseDuration(getEnv("REGISTRATION_LINK_TTL", "24h"), 24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "MSME Awards <no-reply@msme-awards.org>"),

		SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", "service-account.json"),
		SheetRange:      getEnv("SHEETS_RANGE", "Sheet1!A:AG"),
		CacheFile:       getEnv("CACHE_FILE", "cached_data.json"),
		CacheTTL:        parseDuration(getEnv("CACHE_TTL", "5m"), 5*time.Minute),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "production"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// Development reports whether verbose error detail may be exposed to
// clients.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
