package catalog

import (
	"fmt"
	"strings"
)

// Tier is the coarse rarity category of a card
type Tier int

const (
	Common Tier = iota
	Rare
	Epic
	Legendary
)

// Variant is the cosmetic sub-type of a card within its tier
type Variant int

const (
	Standard Variant = iota
	Shiny
	Holographic
	Glitch
)

// Tiers lists every tier in declaration order
var Tiers = []Tier{Common, Rare, Epic, Legendary}

// Variants lists every variant in declaration order
var Variants = []Variant{Standard, Shiny, Holographic, Glitch}

var tierNames = map[Tier]string{
	Common:    "Common",
	Rare:      "Rare",
	Epic:      "Epic",
	Legendary: "Legendary",
}

var variantNames = map[Variant]string{
	Standard:    "Standard",
	Shiny:       "Shiny",
	Holographic: "Holographic",
	Glitch:      "Glitch",
}

// Aliases accepted in catalog and config sources. The French spellings and
// emoji come from the card sheets the first version of the bot shipped with.
var tierAliases = map[string]Tier{
	"common":     Common,
	"commun":     Common,
	"rare":       Rare,
	"epic":       Epic,
	"epique":     Epic,
	"épique":     Epic,
	"legendary":  Legendary,
	"legendaire": Legendary,
	"légendaire": Legendary,
}

var variantAliases = map[string]Variant{
	"standard":    Standard,
	"normal":      Standard,
	"normale":     Standard,
	"shiny":       Shiny,
	"gold":        Shiny,
	"✨":           Shiny,
	"holographic": Holographic,
	"holo":        Holographic,
	"rainbow":     Holographic,
	"🌈":           Holographic,
	"glitch":      Glitch,
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseTier resolves a tier name or alias, case-insensitively
func ParseTier(s string) (Tier, error) {
	if t, ok := tierAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown rarity tier %q", s)
}

// ParseVariant resolves a variant name or alias, case-insensitively
func ParseVariant(s string) (Variant, error) {
	if v, ok := variantAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("unknown rarity variant %q", s)
}

// Rarity is the (tier, variant) pair used as the join key between the
// catalog and the weight table.
type Rarity struct {
	Tier    Tier
	Variant Variant
}

// Valid reports whether the combination may appear in a catalog.
// Glitch only exists under Rare.
func (r Rarity) Valid() bool {
	if _, ok := tierNames[r.Tier]; !ok {
		return false
	}
	if _, ok := variantNames[r.Variant]; !ok {
		return false
	}
	return r.Variant != Glitch || r.Tier == Rare
}

// String returns the canonical composite label, e.g. "Rare Shiny"
func (r Rarity) String() string {
	return r.Tier.String() + " " + r.Variant.String()
}

// Label returns the display label used in replies
func (r Rarity) Label() string {
	switch r.Variant {
	case Shiny:
		return r.Tier.String() + " ✨"
	case Holographic:
		return r.Tier.String() + " 🌈"
	default:
		return r.String()
	}
}

// ParseRarity parses a composite label such as "Rare Gold", "Commun ✨" or
// "Legendary". A bare tier means its Standard variant.
func ParseRarity(label string) (Rarity, error) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return Rarity{}, fmt.Errorf("empty rarity label")
	}

	tier, err := ParseTier(fields[0])
	if err != nil {
		return Rarity{}, err
	}

	variant := Standard
	if len(fields) > 1 {
		variant, err = ParseVariant(strings.Join(fields[1:], " "))
		if err != nil {
			return Rarity{}, err
		}
	}

	r := Rarity{Tier: tier, Variant: variant}
	if !r.Valid() {
		return Rarity{}, fmt.Errorf("rarity %q is not a valid combination", label)
	}
	return r, nil
}

// Accent colours per rarity, used for embed borders
var accentColors = map[Rarity]int{
	{Common, Standard}:       0xA0A0A0, // grey
	{Common, Shiny}:          0xFFD700,
	{Common, Holographic}:    0xC0C0C0, // silver
	{Rare, Standard}:         0x1E90FF, // blue
	{Rare, Shiny}:            0xFFD700,
	{Rare, Holographic}:      0x8A2BE2, // violet
	{Rare, Glitch}:           0xFF1493, // pink
	{Epic, Standard}:         0xFF4500, // orange
	{Epic, Shiny}:            0xFFD700,
	{Epic, Holographic}:      0x8B008B,
	{Legendary, Standard}:    0xDAA520,
	{Legendary, Shiny}:       0xFFD700,
	{Legendary, Holographic}: 0xFF69B4,
}

// AccentColor returns the embed colour for a rarity, 0 when none is defined
func (r Rarity) AccentColor() int {
	return accentColors[r]
}
