package database

import (
	"fmt"
	"log"
	"os"
	"time"

	flog "flavourfit/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the PostgreSQL pool described by dsn. The returned
// handle is owned by the caller and shared by every repository.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Millisecond * 500,
			Colorful:                  true,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 newLogger,
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// MonitorDBConnections warns when the pool runs hot. It stops when done closes.
func MonitorDBConnections(db *gorm.DB, log *flog.Logger, done <-chan struct{}) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("db pool monitor disabled", "error", err)
		return
	}

	ticker := time.NewTicker(10 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				stats := sqlDB.Stats()
				if stats.InUse > 40 {
					log.Warn("db connection pool busy",
						"in_use", stats.InUse,
						"idle", stats.Idle,
						"open", stats.OpenConnections,
					)
				}
			}
		}
	}()
}
