package store

import (
	"fmt"

	"github.com/latoulicious/boosterbot/pkg/booster"
	"github.com/latoulicious/boosterbot/pkg/database/models"
	"github.com/latoulicious/boosterbot/pkg/database/repository"
	"github.com/latoulicious/boosterbot/pkg/logging"
	"gorm.io/gorm"
)

// GormStore keeps one player_records row per user. Every Save is a single
// upsert, so a failed write leaves the previous row in place.
type GormStore struct {
	repo   *repository.PlayerRepository
	logger logging.Logger
}

// NewGormStore creates a store on a migrated database
func NewGormStore(db *gorm.DB, logger logging.Logger) *GormStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GormStore{
		repo:   repository.NewPlayerRepository(db),
		logger: logger,
	}
}

// Load reads the user's row
func (s *GormStore) Load(userID string) (*booster.PlayerRecord, bool, error) {
	row, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load player %s: %w", userID, err)
	}
	if row == nil {
		return nil, false, nil
	}

	rec := &booster.PlayerRecord{
		Collection: booster.Collection{},
		Cooldown:   row.CooldownMillis,
	}
	for name, count := range row.Collection {
		if count > 0 {
			rec.Collection[name] = count
		}
	}
	return rec, true, nil
}

// Save upserts the user's row
func (s *GormStore) Save(userID string, rec *booster.PlayerRecord) error {
	collection := make(map[string]int, len(rec.Collection))
	for name, count := range rec.Collection {
		collection[name] = count
	}

	row := &models.PlayerRecordRow{
		UserID:         userID,
		Collection:     collection,
		CooldownMillis: rec.Cooldown,
	}
	if err := s.repo.Upsert(row); err != nil {
		s.logger.Error("Failed to upsert player record", err, map[string]interface{}{"user_id": userID})
		return fmt.Errorf("failed to save player %s: %w", userID, err)
	}
	return nil
}
