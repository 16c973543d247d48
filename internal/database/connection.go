package database

import (
	"fmt"
	"time"

	"github.com/pokerdesk/club_ledger/internal/config"
	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true, // ledger writes open their own transactions
		PrepareStmt:            true,
		TranslateError:         true, // dedup-key conflicts surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	log.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB, log *logger.Logger) error {
	log.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Player{},
		&models.Transaction{},
		&models.Session{},
		&models.SessionOutcome{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}
