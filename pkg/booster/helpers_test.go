package booster

import (
	"testing"

	"github.com/latoulicious/boosterbot/pkg/catalog"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed values
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scriptedRand: no floats left")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRand) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func mustCatalog(t *testing.T, data string) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(data), "json")
	require.NoError(t, err)
	return cat
}

func mustWeights(t *testing.T, w map[catalog.Tier]map[catalog.Variant]float64) *catalog.WeightTable {
	t.Helper()
	table, err := catalog.NewWeightTable(w)
	require.NoError(t, err)
	return table
}
