package booster

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_UnmarshalJSON(t *testing.T) {
	tests := map[string]struct {
		input string
		want  Collection
	}{
		"object":        {`{"Ember Fox": 2, "Moss Turtle": 0}`, Collection{"Ember Fox": 2}},
		"entry list":    {`[{"name": "Ember Fox", "count": 2}, {"name": "Ember Fox", "count": 1}]`, Collection{"Ember Fox": 3}},
		"name list":     {`["Ember Fox", "Moss Turtle", "Ember Fox"]`, Collection{"Ember Fox": 2, "Moss Turtle": 1}},
		"missing count": {`[{"name": "Ember Fox"}]`, Collection{"Ember Fox": 1}},
		"null":          {`null`, Collection{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var c Collection
			require.NoError(t, json.Unmarshal([]byte(tt.input), &c))
			assert.Equal(t, tt.want, c)
		})
	}

	var c Collection
	assert.Error(t, json.Unmarshal([]byte(`42`), &c))
	assert.Error(t, json.Unmarshal([]byte(`[42]`), &c))
}

func TestPlayerRecord_JSON(t *testing.T) {
	rec := NewPlayerRecord()
	rec.Collection["Ember Fox"] = 1
	rec.SetCooldownExpiresAt(time.UnixMilli(1_700_000_000_123))

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"collection": {"Ember Fox": 1}, "cooldown": 1700000000123}`, string(data))

	var back PlayerRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *rec, back)
}

func TestPlayerRecord_Clone(t *testing.T) {
	rec := NewPlayerRecord()
	rec.Collection["Ember Fox"] = 1

	clone := rec.Clone()
	clone.Collection["Ember Fox"] = 5
	clone.Cooldown = 10

	assert.Equal(t, 1, rec.Collection["Ember Fox"])
	assert.Equal(t, int64(0), rec.Cooldown)
}

func TestCollection_CountIsCaseInsensitive(t *testing.T) {
	c := Collection{"ember fox": 2, "Moss Turtle": 1}
	assert.Equal(t, 2, c.Count("Ember Fox"))
	assert.Equal(t, 0, c.Count("Sun Drake"))
	assert.Equal(t, 3, c.Total())
}
