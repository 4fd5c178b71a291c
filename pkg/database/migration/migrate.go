package migration

import (
	"fmt"

	"github.com/latoulicious/boosterbot/pkg/database/models"
	"github.com/latoulicious/boosterbot/pkg/logging"
	"gorm.io/gorm"
)

// RunMigration creates or updates the bot tables
func RunMigration(db *gorm.DB) error {
	logger := logging.GetGlobalLoggerFactory().CreateLogger("migration")
	logger.Info("Starting migrations", map[string]interface{}{"dialect": db.Dialector.Name()})

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&models.PlayerRecordRow{},
		&models.BotLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Migrations completed successfully", nil)
	return nil
}
