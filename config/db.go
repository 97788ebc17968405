package config

import (
	"fmt"
	"os"
	"studentportal/domain"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// GetDatabaseURL builds the database connection string.
func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))
	return dsn
}

// GetDBMS returns "postgres" unless DBMS selects "sqlite".
func GetDBMS() string {
	if v := os.Getenv("DBMS"); v == "sqlite" {
		return v
	}
	return "postgres"
}

// GetSQLDriverName picks the database/sql driver behind gorm's postgres dialector.
// "postgres" is lib/pq, anything else falls back to pgx.
func GetSQLDriverName() string {
	if v := os.Getenv("DB_SQL_DRIVER"); v == "postgres" {
		return v
	}
	return "pgx"
}

func GetSQLitePath() string {
	return getEnv("SQLITE_PATH", "studentDB.sqlite")
}

func dialector() gorm.Dialector {
	if GetDBMS() == "sqlite" {
		return sqlite.Open(GetSQLitePath())
	}
	return postgres.New(postgres.Config{
		DriverName: GetSQLDriverName(),
		DSN:        GetDatabaseURL(),
	})
}

// BootDB initializes the database connection and runs migrations.
func BootDB() (*gorm.DB, error) {
	var err error

	db, err = gorm.Open(dialector(), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return db, err
	}

	GetLogrusInstance().Infof("DB initialized (%s)", GetDBMS())
	return db, nil
}

// AutoMigrate creates or updates the registration table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Registration{}); err != nil {
		return fmt.Errorf("failed to migrate registrations table: %w", err)
	}
	return nil
}
