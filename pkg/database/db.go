package database

import (
	"fmt"

	"github.com/educonnect/backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the shared Postgres connection pool. The returned *gorm.DB is
// injected into every repository, nothing reaches for it as a global.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBName,
		cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}
