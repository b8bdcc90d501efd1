package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moviehub/internal/config"
	"moviehub/internal/logging"
	"moviehub/internal/microservices/http-api/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Connect opens the catalog database selected by cfg.DatabaseDriver and
// verifies the connection.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.IsDevelopment())
}

// Open is Connect without a Config, used by tests and the admin CLI.
func Open(driver, dsn string, verbose bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if driver == DriverPostgres {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Info().Str("driver", driver).Msg("Connected to the database successfully")
	return db, nil
}

// Migrate creates or updates the catalog schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Director{},
		&models.Actor{},
		&models.Genre{},
		&models.Movie{},
		&models.User{},
		&models.Rating{},
		&models.Review{},
	); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logging.Info().Msg("Database migrations applied successfully")
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
