package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/geosite/cms/internal/models"
)

// Open connects to the database named by url and migrates the schema.
// Postgres is the production target; "sqlite://" URLs (including
// sqlite://:memory:) back development and tests.
func Open(url string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(url, "sqlite://"))
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		dialector = postgres.Open(url)
	default:
		return nil, fmt.Errorf("unsupported database URL: %s", url)
	}

	logLevel := gormlogger.Silent
	if debug {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables for every resource.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Article{},
		&models.User{},
		&models.Service{},
		&models.TeamMember{},
		&models.Certificate{},
		&models.License{},
		&models.Project{},
		&models.Video{},
		&models.ContactSubmission{},
		&models.CompanyInfo{},
		&models.Statistics{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
