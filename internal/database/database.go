package database

import (
	"strings"

	"github.com/inesh111/pj-motors/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB. A postgres:// DSN uses the Postgres driver with
// PreferSimpleProtocol (avoids 42P05 "prepared statement already exists"
// behind connection poolers); anything else is treated as a sqlite file path
// and opened with the pure-Go driver, which is what the packaged desktop
// build ships with.
func Open(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// AutoMigrate runs migrations for all record models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Car{}, &models.CarDocument{}, &models.CarEvent{})
}
