package database

import (
	"fmt"
	"time"

	"gamelibrary/webapp/internal/config"
	"gamelibrary/webapp/internal/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database and runs migrations.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("database connection established", zap.String("driver", cfg.DatabaseDriver))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database migrated successfully")
	return db, nil
}

// NewGormLogger routes GORM's warnings and slow queries through zap.
func NewGormLogger(log *zap.Logger) gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(log.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Publisher{},
		&models.Genre{},
		&models.Game{},
		&models.User{},
		&models.Review{},
		&models.Wishlist{},
		&models.GameWishlist{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Reset empties every table, children first, so the catalog can be imported again.
func Reset(db *gorm.DB) error {
	tables := []string{"game_wishlist", "wishlist", "reviews", "game_genres", "users", "games", "genres", "publishers"}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("reset %s: %w", table, err)
			}
		}
		return nil
	})
}
