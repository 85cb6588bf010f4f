package database

import (
	"context"
	"fmt"
	"time"

	"fintrack/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Migration one versioned schema step, applied at most once
type Migration struct {
	Version string
	Up      func(tx *gorm.DB) error
}

// Migrations ordered schema history
var Migrations = []Migration{
	{
		Version: "0001_core_tables",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.User{}, &models.Category{}, &models.Transaction{}, &models.LimboDebt{})
		},
	},
	{
		Version: "0002_notes_tasks",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.Note{}, &models.Task{})
		},
	},
	{
		Version: "0003_user_settings",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.UserSettings{})
		},
	},
	{
		Version: "0004_transactions_user_date_index",
		Up: func(tx *gorm.DB) error {
			return tx.Exec("CREATE INDEX idx_transactions_user_date ON transactions (user_id, date)").Error
		},
	},
}

// Migrate applies every pending step in Migrations
func Migrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	return RunMigrations(ctx, db, log, Migrations)
}

// RunMigrations applies steps in order. Each step and its schema_migrations record
// share one transaction; recorded versions are skipped.
func RunMigrations(ctx context.Context, db *gorm.DB, log zerolog.Logger, steps []Migration) error {
	db = db.WithContext(ctx)

	if err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(100) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`).Error; err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, step := range steps {
		var applied int64
		if err := db.Model(&models.SchemaMigration{}).Where("version = ?", step.Version).Count(&applied).Error; err != nil {
			return fmt.Errorf("check migration %s: %w", step.Version, err)
		}
		if applied > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := step.Up(tx); err != nil {
				return err
			}
			return tx.Create(&models.SchemaMigration{Version: step.Version, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", step.Version, err)
		}
		log.Info().Str("version", step.Version).Msg("applied migration")
	}
	return nil
}
