package postgres

import (
	"LoveForTennis/config"
	models "LoveForTennis/models/postgres"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectGORM returns a GORM DB instance for the configured driver,
// PostgreSQL unless DB_DRIVER=sqlite.
func ConnectGORM(cfg config.App) (*gorm.DB, error) {
	if cfg.DBDriver == "sqlite" {
		return OpenSQLite(cfg.SQLitePath, cfg.VerbosePostgres)
	}

	// NOTE: See https://github.com/go-gorm/gorm/issues/5409
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost,
		cfg.PostgresPort, cfg.PostgresDatabase, cfg.PostgresSSLMode)

	pqDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Printf("Error connecting to PostgreSQL: %v", err)
		return nil, err
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 pqDB,
		PreferSimpleProtocol: true,
	}), gormConfig(cfg.VerbosePostgres))
	if err != nil {
		log.Printf("Error connecting to PostgreSQL with GORM: %v", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying SQL DB: %v", err)
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Error pinging PostgreSQL: %v", err)
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL with GORM")
	return db, nil
}

// OpenSQLite opens a SQLite database with foreign keys enforced. A single
// connection is kept so that in-memory databases survive between queries.
func OpenSQLite(dsn string, verbose bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(verbose))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	return db, nil
}

func gormConfig(verbose bool) *gorm.Config {
	return gormConfigTo(os.Stdout, verbose)
}

// gormConfigTo writes SQL logs to out. Missing rows are expected in
// normal flows and are never logged.
func gormConfigTo(out io.Writer, verbose bool) *gorm.Config {
	logConfig := logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	}
	if verbose {
		logConfig.LogLevel = logger.Info
		logConfig.Colorful = true
	}
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: logger.New(log.New(out, "\r\n", log.LstdFlags), logConfig),
	}
}

// Exclusion constraint backing the booking overlap check on PostgreSQL.
// btree_gist is needed to mix the court equality with the range overlap.
const bookingOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (court_id WITH =, tstzrange(booking_from, booking_to) WITH &&)
			WHERE (NOT cancelled);
	END IF;
END $$;`

// MigrateDatabase migrates the GORM models to the database
func MigrateDatabase(db *gorm.DB) error {
	// NOTE: for more info, execute db.Debug().AutoMigrate(...)
	err := db.AutoMigrate(
		models.User{},
		models.UserClaim{},
		models.Court{},
		models.Booking{},
		models.BookingPlayer{},
		models.DummyEntity{})
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
			return fmt.Errorf("enable btree_gist: %w", err)
		}
		if err := db.Exec(bookingOverlapConstraint).Error; err != nil {
			return fmt.Errorf("booking overlap constraint: %w", err)
		}
	}
	log.Println("Database migrated successfully")

	return nil
}
