package booster

import (
	"github.com/latoulicious/boosterbot/pkg/catalog"
)

// RandomSource is the randomness the engine draws from. *math/rand/v2.Rand
// satisfies it; tests script it.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// DrawRarity picks a rarity from the table with probability weight/total.
// It draws r uniformly in [0, total) and walks the entries in canonical
// order, returning the first one whose cumulative weight exceeds r.
func DrawRarity(weights *catalog.WeightTable, rng RandomSource) (catalog.Rarity, error) {
	entries := weights.Entries()
	if len(entries) == 0 {
		return catalog.Rarity{}, catalog.ErrEmptyWeightTable
	}

	r := rng.Float64() * weights.Total()

	var cumulative float64
	for _, e := range entries {
		cumulative += e.Weight
		if r < cumulative {
			return e.Rarity, nil
		}
	}

	// float rounding can leave r == total after the walk
	return entries[len(entries)-1].Rarity, nil
}
