package repository

import (
	"errors"

	"github.com/latoulicious/boosterbot/pkg/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlayerRepository handles database operations for PlayerRecordRow
type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByUserID returns the row for userID, or nil when there is none
func (r *PlayerRepository) GetByUserID(userID string) (*models.PlayerRecordRow, error) {
	var row models.PlayerRecordRow
	err := r.db.First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert inserts the row or replaces the stored collection and cooldown
func (r *PlayerRepository) Upsert(row *models.PlayerRecordRow) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"collection", "cooldown_millis", "updated_at"}),
	}).Create(row).Error
}

// Count returns the number of stored players
func (r *PlayerRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.PlayerRecordRow{}).Count(&n).Error
	return n, err
}
