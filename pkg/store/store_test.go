package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/latoulicious/boosterbot/pkg/booster"
	"github.com/latoulicious/boosterbot/pkg/database"
	"github.com/latoulicious/boosterbot/pkg/database/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *booster.PlayerRecord {
	rec := booster.NewPlayerRecord()
	rec.Collection["Ember Fox"] = 2
	rec.SetCooldownExpiresAt(time.UnixMilli(1_700_000_000_000))
	return rec
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, found, err := s.Load("42")
	require.NoError(t, err)
	assert.False(t, found)

	rec := sampleRecord()
	require.NoError(t, s.Save("42", rec))

	// the store keeps its own copy
	rec.Collection["Ember Fox"] = 99

	loaded, found, err := s.Load("42")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, loaded.Collection["Ember Fox"])

	s.FailSave = errors.New("disk full")
	assert.Error(t, s.Save("43", rec))
	assert.Equal(t, 1, s.Len())
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s, err := OpenFileStore(filepath.Join(t.TempDir(), "data.json"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	_, found, err := s.Load("42")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := OpenFileStore(path, nil)
	require.NoError(t, err)

	require.NoError(t, s.Save("42", sampleRecord()))
	assert.FileExists(t, path)

	reopened, err := OpenFileStore(path, nil)
	require.NoError(t, err)

	rec, found, err := reopened.Load("42")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, booster.Collection{"Ember Fox": 2}, rec.Collection)
	assert.Equal(t, int64(1_700_000_000_000), rec.Cooldown)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_LegacyFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"1": {"collection": {"Ember Fox": 2}, "cooldown": 0},
		"2": {"collection": [{"name": "Ember Fox", "count": 3}], "cooldown": 1700000000000},
		"3": {"collection": ["Ember Fox", "Moss Turtle", "Ember Fox"]},
		"4": {}
	}`), 0o644))

	s, err := OpenFileStore(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())

	rec, _, _ := s.Load("2")
	assert.Equal(t, booster.Collection{"Ember Fox": 3}, rec.Collection)
	assert.Equal(t, time.UnixMilli(1_700_000_000_000), rec.CooldownExpiresAt())

	rec, _, _ = s.Load("3")
	assert.Equal(t, booster.Collection{"Ember Fox": 2, "Moss Turtle": 1}, rec.Collection)

	rec, _, _ = s.Load("4")
	assert.NotNil(t, rec.Collection)
	assert.True(t, rec.CooldownExpiresAt().IsZero())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"1": `), 0o644))

	_, err := OpenFileStore(path, nil)
	assert.Error(t, err)
}

func TestFileStore_WriteFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	s, err := OpenFileStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save("42", sampleRecord()))

	// point the store at a directory that no longer exists
	s.path = filepath.Join(dir, "gone", "data.json")

	updated := sampleRecord()
	updated.Collection["Moss Turtle"] = 1
	require.Error(t, s.Save("42", updated))
	require.Error(t, s.Save("43", updated))

	rec, found, err := s.Load("42")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, booster.Collection{"Ember Fox": 2}, rec.Collection)

	_, found, _ = s.Load("43")
	assert.False(t, found)
}

func TestGormStore(t *testing.T) {
	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	require.NoError(t, migration.RunMigration(db))
	t.Cleanup(func() { _ = database.NewDatabaseManager(db).Close() })

	s := NewGormStore(db, nil)

	_, found, err := s.Load("42")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save("42", sampleRecord()))

	rec := sampleRecord()
	delete(rec.Collection, "Ember Fox")
	rec.Collection["Moss Turtle"] = 1
	booster.ResetCooldown(rec)
	require.NoError(t, s.Save("42", rec))

	loaded, found, err := s.Load("42")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, booster.Collection{"Moss Turtle": 1}, loaded.Collection)
	assert.True(t, loaded.CooldownExpiresAt().IsZero())
}
