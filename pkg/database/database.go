package database

import (
	"fmt"

	"wayfarer/pkg/config"
	"wayfarer/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewPostgresDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

// AutoMigrate creates the schema for development setups. Production uses the
// SQL migrations under migrations/ through cmd/migrate.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Country{},
		&models.Post{},
		&models.Photo{},
		&models.Comment{},
		&models.Tag{},
		&models.Vote{},
		&models.PostLift{},
		&models.PostLiftLog{},
	)
}
