package models

import "time"

// PlayerRecordRow is one user's booster state
type PlayerRecordRow struct {
	UserID         string         `gorm:"primaryKey;size:32" json:"user_id"`
	Collection     map[string]int `gorm:"serializer:json;type:text;not null" json:"collection"`
	CooldownMillis int64          `gorm:"not null;default:0" json:"cooldown"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for PlayerRecordRow
func (PlayerRecordRow) TableName() string {
	return "player_records"
}
