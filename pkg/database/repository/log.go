package repository

import (
	"github.com/latoulicious/boosterbot/pkg/database/models"
	"github.com/latoulicious/boosterbot/pkg/logging"
	"gorm.io/gorm"
)

// LogRepository stores logging entries in bot_logs
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// SaveLog implements logging.LogRepository
func (r *LogRepository) SaveLog(entry logging.LogEntry) error {
	row := &models.BotLog{
		Component: entry.Component,
		Level:     entry.Level,
		Message:   entry.Message,
		Error:     entry.Error,
		Fields:    entry.Fields,
		GuildID:   entry.GuildID,
		UserID:    entry.UserID,
		ChannelID: entry.ChannelID,
	}
	return r.db.Create(row).Error
}

// Recent returns the latest log rows, newest first
func (r *LogRepository) Recent(limit int) ([]models.BotLog, error) {
	var logs []models.BotLog
	err := r.db.Order("timestamp desc").Limit(limit).Find(&logs).Error
	return logs, err
}
