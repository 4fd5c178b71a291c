package booster

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/latoulicious/boosterbot/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawRarity_DefaultTableGolden(t *testing.T) {
	stream := []float64{0.0, 0.40, 0.49, 0.5, 0.75, 0.84, 0.849, 0.90, 0.93, 0.947, 0.97, 0.99, 0.999}
	want := []catalog.Rarity{
		{Tier: catalog.Common, Variant: catalog.Standard},
		{Tier: catalog.Common, Variant: catalog.Shiny},
		{Tier: catalog.Common, Variant: catalog.Holographic},
		{Tier: catalog.Rare, Variant: catalog.Standard},
		{Tier: catalog.Rare, Variant: catalog.Shiny},
		{Tier: catalog.Rare, Variant: catalog.Holographic},
		{Tier: catalog.Rare, Variant: catalog.Glitch},
		{Tier: catalog.Epic, Variant: catalog.Standard},
		{Tier: catalog.Epic, Variant: catalog.Shiny},
		{Tier: catalog.Epic, Variant: catalog.Holographic},
		{Tier: catalog.Legendary, Variant: catalog.Standard},
		{Tier: catalog.Legendary, Variant: catalog.Shiny},
		{Tier: catalog.Legendary, Variant: catalog.Holographic},
	}

	table := catalog.DefaultWeightTable()
	rng := &scriptedRand{floats: stream}

	var got []catalog.Rarity
	for range stream {
		r, err := DrawRarity(table, rng)
		require.NoError(t, err)
		got = append(got, r)
	}
	assert.Equal(t, want, got)
}

func TestDrawRarity_FractionalWeights(t *testing.T) {
	table := mustWeights(t, map[catalog.Tier]map[catalog.Variant]float64{
		catalog.Common: {catalog.Standard: 1.5},
		catalog.Rare:   {catalog.Shiny: 0.5},
	})

	rng := &scriptedRand{floats: []float64{0.7, 0.75, 0.2, 0.9999}}
	var got []catalog.Rarity
	for i := 0; i < 4; i++ {
		r, err := DrawRarity(table, rng)
		require.NoError(t, err)
		got = append(got, r)
	}

	common := catalog.Rarity{Tier: catalog.Common, Variant: catalog.Standard}
	rareShiny := catalog.Rarity{Tier: catalog.Rare, Variant: catalog.Shiny}
	assert.Equal(t, []catalog.Rarity{common, rareShiny, common, rareShiny}, got)
}

func TestDrawRarity_OutOfRangeFallsBackToLast(t *testing.T) {
	rng := &scriptedRand{floats: []float64{1.0}}
	r, err := DrawRarity(catalog.DefaultWeightTable(), rng)
	require.NoError(t, err)
	assert.Equal(t, catalog.Rarity{Tier: catalog.Legendary, Variant: catalog.Holographic}, r)
}

func TestDrawRarity_SeededIsReproducible(t *testing.T) {
	table := catalog.DefaultWeightTable()
	a := rand.New(rand.NewPCG(7, 11))
	b := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 200; i++ {
		ra, err := DrawRarity(table, a)
		require.NoError(t, err)
		rb, err := DrawRarity(table, b)
		require.NoError(t, err)
		require.Equal(t, ra, rb, "draw %d", i)
	}
}

func TestDrawRarity_Distribution(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}

	const n = 100_000
	table := catalog.DefaultWeightTable()
	rng := rand.New(rand.NewPCG(1, 2))

	counts := make(map[catalog.Rarity]int)
	for i := 0; i < n; i++ {
		r, err := DrawRarity(table, rng)
		require.NoError(t, err)
		counts[r]++
	}

	for _, e := range table.Entries() {
		p := e.Weight / table.Total()
		expected := n * p
		sigma := math.Sqrt(n * p * (1 - p))
		assert.InDelta(t, expected, float64(counts[e.Rarity]), 5*sigma+1,
			"%s: expected %.0f got %d", e.Rarity, expected, counts[e.Rarity])
	}

	assert.Len(t, counts, len(table.Entries()), "a rarity without weight was drawn")
}
