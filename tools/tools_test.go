package tools

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/latoulicious/boosterbot/pkg/catalog"
	"github.com/latoulicious/boosterbot/pkg/database"
	"github.com/latoulicious/boosterbot/pkg/database/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "Ember Fox", "rarity": "Rare Gold", "image": "ember.png"},
		{"name": "Ash Fox", "rarity": "Rare Gold", "image": "ash.png"},
		{"name": "Static Wisp", "rarity": "Epic Glitch", "image": "wisp.png"}
	]`), 0o644))

	_, err := CheckCatalog(path, catalog.DefaultWeightTable(), "")
	require.Error(t, err, "glitch is only valid for rare cards")
	assert.True(t, catalog.IsMalformed(err))

	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "Ember Fox", "rarity": "Rare Gold", "image": "ember.png"},
		{"name": "Ash Fox", "rarity": "Rare Gold", "image": "ash.png"},
		{"name": "Static Wisp", "rarity": "Rare Glitch", "image": "wisp.png"}
	]`), 0o644))

	weights, err := catalog.NewWeightTable(map[catalog.Tier]map[catalog.Variant]float64{
		catalog.Rare:   {catalog.Shiny: 8.75},
		catalog.Common: {catalog.Standard: 35},
	})
	require.NoError(t, err)

	report, err := CheckCatalog(path, weights, "http://localhost:3000")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Cards)
	assert.Equal(t, 2, report.PerRarity[catalog.Rarity{Tier: catalog.Rare, Variant: catalog.Shiny}])
	assert.Equal(t, []catalog.Rarity{{Tier: catalog.Common, Variant: catalog.Standard}}, report.Missing)
	assert.Equal(t, []catalog.Rarity{{Tier: catalog.Rare, Variant: catalog.Glitch}}, report.Unweighted)

	var out bytes.Buffer
	report.Print(&out)
	assert.Contains(t, out.String(), "Loaded 3 cards")
	assert.Contains(t, out.String(), "has no card")
	assert.Contains(t, out.String(), "can only be granted")
}

func TestCheckCatalog_NotFound(t *testing.T) {
	_, err := CheckCatalog(filepath.Join(t.TempDir(), "missing.json"), catalog.DefaultWeightTable(), "")
	require.Error(t, err)
	assert.True(t, catalog.IsNotFound(err))
}

func TestDBCheck_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.db")

	var out bytes.Buffer
	require.NoError(t, DBCheck(database.DriverSQLite, path, &out))
	assert.Contains(t, out.String(), "Missing tables")

	db, err := database.Open(database.DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, migration.RunMigration(db))
	require.NoError(t, database.NewDatabaseManager(db).Close())

	out.Reset()
	require.NoError(t, DBCheck(database.DriverSQLite, path, &out))
	assert.Contains(t, out.String(), "All bot tables exist")
	assert.Contains(t, out.String(), "Transaction capability verified")
}

func TestDBCheck_BadDriver(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, DBCheck("oracle", "dsn", &out))
}
