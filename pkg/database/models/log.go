package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BotLog is a persisted log entry
type BotLog struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	Component string                 `gorm:"index;not null" json:"component"`
	Level     string                 `gorm:"index;not null" json:"level"`
	Message   string                 `gorm:"type:text;not null" json:"message"`
	Error     string                 `gorm:"type:text" json:"error"`
	Fields    map[string]interface{} `gorm:"serializer:json;type:text" json:"fields"`
	GuildID   string                 `gorm:"index" json:"guild_id"`
	UserID    string                 `gorm:"index" json:"user_id"`
	ChannelID string                 `gorm:"index" json:"channel_id"`
	Timestamp time.Time              `gorm:"index;not null" json:"timestamp"`
}

// TableName specifies the table name for BotLog
func (BotLog) TableName() string {
	return "bot_logs"
}

// BeforeCreate assigns an id and timestamp when missing
func (l *BotLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return nil
}
