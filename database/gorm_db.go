package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/theaterbackend/config"
	"github.com/camden-git/theaterbackend/models"
)

// InitGormDB initializes and returns a GORM database instance. The
// testing environment runs on SQLite, everything else on PostgreSQL.
func InitGormDB(cfg config.Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var dialector gorm.Dialector
	if cfg.Environment == config.EnvTesting {
		dialector = sqlite.Open(cfg.DatabasePath)
	} else {
		dialector = postgres.Open(cfg.PostgresDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("GORM Database initialized successfully (environment: %s)", cfg.Environment)
	return db, nil
}

// AutoMigrateModels can be called after InitGormDB to migrate schemas
func AutoMigrateModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Country{},
		&models.Genre{},
		&models.Actor{},
		&models.Language{},
		&models.Movie{},
	)
	if err != nil {
		return fmt.Errorf("GORM AutoMigrate failed: %w", err)
	}
	log.Println("GORM AutoMigrate completed successfully.")
	return nil
}

// Reset drops every catalog table and re-runs the migrations. Used by
// the test harness and by seeding bootstrap runs.
func Reset(db *gorm.DB) error {
	err := db.Migrator().DropTable(
		"movie_genres",
		"movie_actors",
		"movie_languages",
		&models.Movie{},
		&models.Genre{},
		&models.Actor{},
		&models.Language{},
		&models.Country{},
	)
	if err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return AutoMigrateModels(db)
}
