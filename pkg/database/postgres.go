package database

import (
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/experience-booking/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate creates or updates the schema. It is dialect-agnostic so package
// tests can run it against sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Experience{}, &models.Slot{}, &models.PromoCode{}, &models.Booking{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Serves the "available slots of an experience, by date then time" listing.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_slots_experience_date
		ON slots (experience_id, date, start_time)
	`).Error; err != nil {
		return fmt.Errorf("create slot index: %w", err)
	}

	return nil
}
