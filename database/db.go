package database

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"invoicing-backend/logger"
	"invoicing-backend/models"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Derived per call so it picks up the configuration applied in main.
func log() zerolog.Logger {
	return logger.WithComponent("database")
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Connect opens the shared connection. Public-schema tables hold the user
// accounts; everything else lives in per-tenant schemas.
func Connect() {
	l := log()
	if err := godotenv.Load(); err != nil {
		l.Debug().Msg("no .env file, relying on process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env("DB_HOST", "db"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), env("DB_PORT", "5432"), env("DB_SSLMODE", "disable"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		l.Fatal().Err(err).Msg("could not connect to database")
	}
}

// AutoMigrate applies the public-schema tables.
func AutoMigrate() {
	if err := DB.AutoMigrate(&models.User{}); err != nil {
		l := log()
		l.Fatal().Err(err).Msg("public schema migration failed")
	}
}

var schemaNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// CreateTenantSchema creates the tenant's schema if it does not exist yet.
// The name is validated before interpolation; schema names cannot be bound as
// statement parameters.
func CreateTenantSchema(schema string) error {
	schema = strings.TrimSpace(schema)
	if !schemaNameRe.MatchString(schema) {
		return fmt.Errorf("invalid tenant schema name: %q", schema)
	}
	return DB.Exec(`CREATE SCHEMA IF NOT EXISTS "` + schema + `"`).Error
}
