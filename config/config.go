// Package config loads application settings from a .env file and environment
// variables. Environment variables always take precedence over .env values.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL: either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret for the admin surface (required in production).
	JWTSecret string `validate:"required"`

	// Pre-shared key for the bulk race sync endpoints.
	SyncAPIKey string `validate:"required"`

	// Secret protecting the news sync endpoint when hit by a cron job.
	CronSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Cloudflare R2 (S3-compatible), used by cmd/migrateimages.
	R2 R2Config

	// Google Sheets race export consumed by cmd/importraces.
	SpreadsheetID string

	// Legacy dashboard JSON API, the alternative import source.
	DashboardAPI string

	// WordPress MySQL DSN, used only by cmd/migratewp.
	MySQLDSN string
}

// R2Config holds object-storage credentials and addressing.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "filmmyrun")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "filmmyrun")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "api.filmmyrun.co.uk")
	v.SetDefault("DEBUG", false)
	v.SetDefault("R2_BUCKET_NAME", "filmmyrun-images")
	v.SetDefault("R2_PUBLIC_URL", "https://images.filmmyrun.co.uk")
	v.SetDefault("RACE_SPREADSHEET_ID", "")

	cfg := &Config{
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		SyncAPIKey:  v.GetString("SYNC_API_KEY"),
		CronSecret:  v.GetString("CRON_SECRET"),
		Debug:       v.GetBool("DEBUG"),
		Port:        v.GetString("PORT"),
		TLSDomains:  splitTrimmed(v.GetString("TLS_DOMAINS")),
		R2: R2Config{
			AccountID:       v.GetString("R2_ACCOUNT_ID"),
			AccessKeyID:     v.GetString("R2_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("R2_SECRET_ACCESS_KEY"),
			Bucket:          v.GetString("R2_BUCKET_NAME"),
			PublicURL:       v.GetString("R2_PUBLIC_URL"),
		},
		SpreadsheetID: v.GetString("RACE_SPREADSHEET_ID"),
		DashboardAPI:  v.GetString("DASHBOARD_API"),
		MySQLDSN:      v.GetString("MYSQL_DSN"),
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// R2Endpoint returns the account-scoped S3-compatible endpoint.
func (c *R2Config) R2Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if err := validator.New().Struct(c); err != nil {
		log.Fatalf("config: %v", err)
	}
}

// ValidateR2 checks the credentials needed by the image migration; the server
// itself never talks to object storage so this is not part of validate.
func (c *R2Config) ValidateR2() error {
	type creds struct {
		AccountID       string `validate:"required"`
		AccessKeyID     string `validate:"required"`
		SecretAccessKey string `validate:"required"`
		PublicURL       string `validate:"required,url"`
	}
	return validator.New().Struct(creds{
		AccountID:       c.AccountID,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		PublicURL:       c.PublicURL,
	})
}

func newViper() *viper.Viper {
	// Silently load .env; OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
