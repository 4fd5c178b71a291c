package tools

import (
	"fmt"
	"io"

	"github.com/latoulicious/boosterbot/pkg/catalog"
)

// CatalogReport summarises a catalog checked against a weight table
type CatalogReport struct {
	Path       string
	Cards      int
	PerRarity  map[catalog.Rarity]int
	Missing    []catalog.Rarity
	Unweighted []catalog.Rarity
	weights    *catalog.WeightTable
}

// CheckCatalog loads the catalog at path and cross-checks it with weights.
// Load errors are returned as is.
func CheckCatalog(path string, weights *catalog.WeightTable, imageBaseURL string) (*CatalogReport, error) {
	cat, err := catalog.Load(path, catalog.WithImageBaseURL(imageBaseURL))
	if err != nil {
		return nil, err
	}

	report := &CatalogReport{
		Path:       path,
		Cards:      cat.Len(),
		PerRarity:  make(map[catalog.Rarity]int),
		Missing:    cat.MissingRarities(weights),
		Unweighted: cat.UnweightedRarities(weights),
		weights:    weights,
	}
	for _, card := range cat.All() {
		report.PerRarity[card.Rarity]++
	}
	return report, nil
}

// Print writes the report in the same style as the other checks
func (r *CatalogReport) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Card Catalog Check ===")
	fmt.Fprintf(w, "✅ Loaded %d cards from %s\n", r.Cards, r.Path)

	fmt.Fprintln(w, "📊 Cards per weighted rarity:")
	for _, e := range r.weights.Entries() {
		fmt.Fprintf(w, "   - %-22s %6.2f%%  %d card(s)\n",
			e.Rarity.Label(), 100*r.weights.Probability(e.Rarity), r.PerRarity[e.Rarity])
	}

	if len(r.Missing) == 0 {
		fmt.Fprintln(w, "✅ Every weighted rarity has at least one card")
	} else {
		for _, rarity := range r.Missing {
			fmt.Fprintf(w, "⚠️  %s is weighted but has no card, draws landing on it will fail\n", rarity.Label())
		}
	}
	for _, rarity := range r.Unweighted {
		fmt.Fprintf(w, "ℹ️  %s has cards but no weight, they can only be granted\n", rarity.Label())
	}
}
