package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// WeightedRarity is one leaf of the flattened weight table
type WeightedRarity struct {
	Rarity Rarity
	Weight float64
}

// WeightTable holds the relative draw weight of every rarity. Entries are
// kept in canonical order (tier declaration order, then variant declaration
// order) so that a given random stream always yields the same draws.
type WeightTable struct {
	entries []WeightedRarity
	total   float64
}

// ErrEmptyWeightTable is returned when no rarity carries a positive weight
var ErrEmptyWeightTable = errors.New("weight table has no positive weight")

// NewWeightTable flattens a tier -> variant -> weight mapping. Zero weights
// are dropped; negative or non-finite weights and invalid combinations are
// rejected.
func NewWeightTable(weights map[Tier]map[Variant]float64) (*WeightTable, error) {
	table := &WeightTable{}

	for _, tier := range Tiers {
		variants, ok := weights[tier]
		if !ok {
			continue
		}
		for _, variant := range Variants {
			w, ok := variants[variant]
			if !ok {
				continue
			}
			r := Rarity{Tier: tier, Variant: variant}
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return nil, fmt.Errorf("weight for %s must be a positive number, got %v", r, w)
			}
			if !r.Valid() {
				return nil, fmt.Errorf("weight defined for invalid rarity %s", r)
			}
			if w == 0 {
				continue
			}
			table.entries = append(table.entries, WeightedRarity{Rarity: r, Weight: w})
			table.total += w
		}
	}

	for tier, variants := range weights {
		if _, ok := tierNames[tier]; !ok {
			return nil, fmt.Errorf("weight defined for unknown tier %d", int(tier))
		}
		for variant := range variants {
			if _, ok := variantNames[variant]; !ok {
				return nil, fmt.Errorf("weight defined for unknown variant %d under %s", int(variant), tier)
			}
		}
	}

	if len(table.entries) == 0 {
		return nil, ErrEmptyWeightTable
	}
	return table, nil
}

// ParseWeightTable builds a table from string keys as found in config files,
// e.g. {"Rare": {"Gold": 8.75}}.
// Two keys naming the same slot through aliases ("Shiny" and "Gold") are an
// error.
func ParseWeightTable(raw map[string]map[string]float64) (*WeightTable, error) {
	tierNames := make([]string, 0, len(raw))
	for name := range raw {
		tierNames = append(tierNames, name)
	}
	sort.Strings(tierNames)

	weights := make(map[Tier]map[Variant]float64, len(raw))
	keys := make(map[Rarity]string)
	for _, tierName := range tierNames {
		tier, err := ParseTier(tierName)
		if err != nil {
			return nil, err
		}
		if weights[tier] == nil {
			weights[tier] = make(map[Variant]float64, len(raw[tierName]))
		}

		variantNames := make([]string, 0, len(raw[tierName]))
		for name := range raw[tierName] {
			variantNames = append(variantNames, name)
		}
		sort.Strings(variantNames)

		for _, variantName := range variantNames {
			variant, err := ParseVariant(variantName)
			if err != nil {
				return nil, err
			}
			r := Rarity{Tier: tier, Variant: variant}
			key := tierName + "/" + variantName
			if prev, dup := keys[r]; dup {
				return nil, fmt.Errorf("duplicate weight for %s (%q and %q)", r, prev, key)
			}
			keys[r] = key
			weights[tier][variant] = raw[tierName][variantName]
		}
	}
	return NewWeightTable(weights)
}

// DefaultWeights is the stock probability table; it sums to 100
func DefaultWeights() map[Tier]map[Variant]float64 {
	return map[Tier]map[Variant]float64{
		Common: {
			Standard:    35,
			Shiny:       12.5,
			Holographic: 2.5,
		},
		Rare: {
			Standard:    24.5,
			Shiny:       8.75,
			Holographic: 1.5,
			Glitch:      0.25,
		},
		Epic: {
			Standard:    7,
			Shiny:       2.5,
			Holographic: 0.5,
		},
		Legendary: {
			Standard:    3.5,
			Shiny:       1.25,
			Holographic: 0.25,
		},
	}
}

// DefaultWeightTable returns the stock table
func DefaultWeightTable() *WeightTable {
	table, err := NewWeightTable(DefaultWeights())
	if err != nil {
		panic("default weight table is invalid: " + err.Error())
	}
	return table
}

// Entries returns the flattened table in canonical order
func (w *WeightTable) Entries() []WeightedRarity {
	out := make([]WeightedRarity, len(w.entries))
	copy(out, w.entries)
	return out
}

// Total returns the sum of all weights
func (w *WeightTable) Total() float64 {
	return w.total
}

// Weight returns the weight of a rarity, 0 when it is not drawable
func (w *WeightTable) Weight(r Rarity) float64 {
	for _, e := range w.entries {
		if e.Rarity == r {
			return e.Weight
		}
	}
	return 0
}

// Probability returns weight / total for a rarity
func (w *WeightTable) Probability(r Rarity) float64 {
	if w.total == 0 {
		return 0
	}
	return w.Weight(r) / w.total
}
