package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/latoulicious/boosterbot/pkg/database"
	"github.com/latoulicious/boosterbot/pkg/database/migration"
	"github.com/latoulicious/boosterbot/pkg/database/models"
	"github.com/latoulicious/boosterbot/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	require.NoError(t, migration.RunMigration(db))
	t.Cleanup(func() {
		_ = database.NewDatabaseManager(db).Close()
	})
	return db
}

func TestPlayerRepository_Upsert(t *testing.T) {
	repo := NewPlayerRepository(openTestDB(t))

	row, err := repo.GetByUserID("42")
	require.NoError(t, err)
	assert.Nil(t, row)

	require.NoError(t, repo.Upsert(&models.PlayerRecordRow{
		UserID:         "42",
		Collection:     map[string]int{"Ember Fox": 1},
		CooldownMillis: 1000,
	}))
	require.NoError(t, repo.Upsert(&models.PlayerRecordRow{
		UserID:         "42",
		Collection:     map[string]int{"Ember Fox": 2, "Moss Turtle": 1},
		CooldownMillis: 0,
	}))

	row, err = repo.GetByUserID("42")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, map[string]int{"Ember Fox": 2, "Moss Turtle": 1}, row.Collection)
	assert.Equal(t, int64(0), row.CooldownMillis)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLogRepository_SaveLog(t *testing.T) {
	db := openTestDB(t)
	repo := NewLogRepository(db)

	require.NoError(t, repo.SaveLog(logging.LogEntry{
		Component: "commands",
		Level:     "ERROR",
		Message:   "Player store operation failed",
		Error:     "disk full",
		Fields:    map[string]interface{}{"command": "pc-open"},
		UserID:    "42",
	}))

	logs, err := repo.Recent(10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", logs[0].ID.String())
	assert.Equal(t, "pc-open", logs[0].Fields["command"])
	assert.WithinDuration(t, time.Now(), logs[0].Timestamp, time.Minute)

	stats, err := database.NewDatabaseManager(db).Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["bot_logs"])
	assert.Equal(t, int64(0), stats["player_records"])
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open("mysql", "dsn")
	assert.Error(t, err)

	_, err = database.NewGormDB("")
	assert.Error(t, err)
}
