package database

import (
	"github.com/latoulicious/boosterbot/pkg/database/models"
	"gorm.io/gorm"
)

// DatabaseManager owns the connection shared by the player store and the
// log repository
type DatabaseManager struct {
	db *gorm.DB
}

// NewDatabaseManager wraps an open connection
func NewDatabaseManager(gormDB *gorm.DB) *DatabaseManager {
	return &DatabaseManager{db: gormDB}
}

// DB returns the underlying connection
func (dm *DatabaseManager) DB() *gorm.DB {
	return dm.db
}

// Ping checks the connection is alive
func (dm *DatabaseManager) Ping() error {
	sqlDB, err := dm.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the database connection
func (dm *DatabaseManager) Close() error {
	sqlDB, err := dm.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats returns row counts of the bot tables
func (dm *DatabaseManager) Stats() (map[string]interface{}, error) {
	var players, logs int64

	if err := dm.db.Model(&models.PlayerRecordRow{}).Count(&players).Error; err != nil {
		return nil, err
	}
	if err := dm.db.Model(&models.BotLog{}).Count(&logs).Error; err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"player_records": players,
		"bot_logs":       logs,
	}, nil
}
