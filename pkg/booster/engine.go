package booster

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/latoulicious/boosterbot/pkg/catalog"
)

// Engine holds the draw and collection rules. It never performs I/O; the
// caller loads the record, runs an operation and persists the result.
type Engine struct {
	catalog  *catalog.Catalog
	weights  *catalog.WeightTable
	cooldown time.Duration

	rngMu sync.Mutex
	rng   RandomSource
}

// DrawResult is the outcome of a successful booster
type DrawResult struct {
	Card              catalog.Card
	Tier              catalog.Tier
	Variant           catalog.Variant
	Count             int
	CooldownExpiresAt time.Time
}

// CollectionEntry is one line of a listed collection
type CollectionEntry struct {
	Name  string
	Count int
}

// RevokeOutcome reports what a revoke did. Remaining is 0 when Removed.
type RevokeOutcome struct {
	Card      string
	Removed   bool
	Remaining int
}

// NewEngine creates an engine. rng is shared by every draw and guarded
// internally, so a plain *rand.Rand is fine.
func NewEngine(cat *catalog.Catalog, weights *catalog.WeightTable, rng RandomSource, cooldown time.Duration) *Engine {
	return &Engine{
		catalog:  cat,
		weights:  weights,
		rng:      rng,
		cooldown: cooldown,
	}
}

// Cooldown returns the configured wait between boosters
func (e *Engine) Cooldown() time.Duration {
	return e.cooldown
}

// OpenBooster draws one card into rec and starts its cooldown. On error rec
// is left untouched.
func (e *Engine) OpenBooster(rec *PlayerRecord, now time.Time) (*DrawResult, error) {
	if !CanDraw(rec, now) {
		return nil, &EngineError{Kind: OnCooldown, Remaining: CooldownRemaining(rec, now)}
	}

	card, err := e.draw()
	if err != nil {
		return nil, err
	}

	count := increment(rec, card.Name)
	expires := now.Add(e.cooldown)
	rec.SetCooldownExpiresAt(expires)

	return &DrawResult{
		Card:              card,
		Tier:              card.Rarity.Tier,
		Variant:           card.Rarity.Variant,
		Count:             count,
		CooldownExpiresAt: rec.CooldownExpiresAt(),
	}, nil
}

func (e *Engine) draw() (catalog.Card, error) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()

	rarity, err := DrawRarity(e.weights, e.rng)
	if err != nil {
		return catalog.Card{}, &EngineError{Kind: CatalogInconsistent, Err: err}
	}

	if cards := e.catalog.CardsByRarity(rarity); len(cards) > 1 {
		return cards[e.rng.IntN(len(cards))], nil
	}
	card, ok := e.catalog.FindByRarity(rarity.Tier, rarity.Variant)
	if !ok {
		return catalog.Card{}, &EngineError{Kind: CatalogInconsistent, Rarity: rarity}
	}
	return card, nil
}

// ListCollection returns the owned cards sorted by name, case-insensitively
func (e *Engine) ListCollection(rec *PlayerRecord) []CollectionEntry {
	return ListCollection(rec)
}

// ListCollection is the catalog-independent form of Engine.ListCollection
func ListCollection(rec *PlayerRecord) []CollectionEntry {
	entries := make([]CollectionEntry, 0, len(rec.Collection))
	for name, count := range rec.Collection {
		if count <= 0 {
			continue
		}
		entries = append(entries, CollectionEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if a != b {
			return a < b
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// AdminGrant adds one copy of the named card to rec. The cooldown is not
// touched.
func (e *Engine) AdminGrant(rec *PlayerRecord, cardName string) (catalog.Card, int, error) {
	card, ok := e.catalog.FindByName(cardName)
	if !ok {
		return catalog.Card{}, 0, &EngineError{Kind: CardNotFound, Card: cardName}
	}
	return card, increment(rec, card.Name), nil
}

// AdminRevoke removes one copy of the named card from rec, deleting the
// entry when the last copy goes.
func (e *Engine) AdminRevoke(rec *PlayerRecord, cardName string) (RevokeOutcome, error) {
	card, ok := e.catalog.FindByName(cardName)
	if !ok {
		return RevokeOutcome{}, &EngineError{Kind: CardNotFound, Card: cardName}
	}

	key, owned := rec.Collection.key(card.Name)
	if !owned || rec.Collection[key] <= 0 {
		return RevokeOutcome{}, &EngineError{Kind: NotOwned, Card: card.Name}
	}

	remaining := rec.Collection[key] - 1
	if remaining == 0 {
		delete(rec.Collection, key)
		return RevokeOutcome{Card: card.Name, Removed: true}, nil
	}
	rec.Collection[key] = remaining
	return RevokeOutcome{Card: card.Name, Remaining: remaining}, nil
}

// ResetCooldown clears rec's cooldown
func (e *Engine) ResetCooldown(rec *PlayerRecord) {
	ResetCooldown(rec)
}

// ResetCooldown is the catalog-independent form of Engine.ResetCooldown
func ResetCooldown(rec *PlayerRecord) {
	rec.SetCooldownExpiresAt(time.Time{})
}

// increment adds one copy of name, reusing an existing key that differs only
// in case, and returns the new count.
func increment(rec *PlayerRecord, name string) int {
	if rec.Collection == nil {
		rec.Collection = Collection{}
	}
	key, ok := rec.Collection.key(name)
	if !ok {
		key = name
	}
	rec.Collection[key]++
	return rec.Collection[key]
}
