package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Card is an immutable card definition
type Card struct {
	Name     string
	Rarity   Rarity
	ImageRef string
}

// Catalog is the validated, read-only set of cards. It is safe for
// concurrent use once loaded.
type Catalog struct {
	cards    []Card
	byName   map[string]int
	byRarity map[Rarity][]int
}

// cardSource is one record of a catalog file
type cardSource struct {
	Name   string `yaml:"name" toml:"name"`
	Rarity string `yaml:"rarity" toml:"rarity"`
	Image  string `yaml:"image" toml:"image"`
}

type catalogFile struct {
	Cards []cardSource `yaml:"cards" toml:"cards"`
}

// Option customises Load
type Option func(*loadOptions)

type loadOptions struct {
	imageBaseURL string
}

// WithImageBaseURL resolves relative image paths to <base>/images/<path>
func WithImageBaseURL(base string) Option {
	return func(o *loadOptions) {
		o.imageBaseURL = base
	}
}

// Load reads a catalog file. JSON and YAML files hold either a list of
// {name, rarity, image} records or a mapping with a "cards" list; TOML files
// use [[cards]] tables.
func Load(path string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &CatalogError{Kind: NotFound, Source: path, Err: err}
		}
		return nil, &CatalogError{Kind: Malformed, Source: path, Err: err}
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cat, err := Parse(data, format, opts...)
	if err != nil {
		var ce *CatalogError
		if errors.As(err, &ce) {
			ce.Source = path
			return nil, ce
		}
		return nil, &CatalogError{Kind: Malformed, Source: path, Err: err}
	}
	return cat, nil
}

// Parse decodes and validates catalog data. format is "toml", or anything
// else for JSON/YAML.
func Parse(data []byte, format string, opts ...Option) (*Catalog, error) {
	options := &loadOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var sources []cardSource
	var err error
	if format == "toml" {
		sources, err = decodeTOML(data)
	} else {
		sources, err = decodeYAML(data)
	}
	if err != nil {
		return nil, &CatalogError{Kind: Malformed, Source: "<memory>", Err: err}
	}

	cat, err := build(sources, options)
	if err != nil {
		return nil, &CatalogError{Kind: Malformed, Source: "<memory>", Err: err}
	}
	return cat, nil
}

func decodeTOML(data []byte) ([]cardSource, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse TOML catalog: %w", err)
	}
	return file.Cards, nil
}

func decodeYAML(data []byte) ([]cardSource, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, errors.New("catalog is empty")
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var sources []cardSource
		if err := doc.Decode(&sources); err != nil {
			return nil, fmt.Errorf("failed to decode card list: %w", err)
		}
		return sources, nil
	case yaml.MappingNode:
		var file catalogFile
		if err := doc.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
		return file.Cards, nil
	default:
		return nil, errors.New("catalog must be a list of cards or a mapping with a cards list")
	}
}

// MaxNameLength bounds card names so they fit in a Discord embed title
const MaxNameLength = 100

func build(sources []cardSource, options *loadOptions) (*Catalog, error) {
	if len(sources) == 0 {
		return nil, errors.New("catalog contains no cards")
	}

	cat := &Catalog{
		cards:    make([]Card, 0, len(sources)),
		byName:   make(map[string]int, len(sources)),
		byRarity: make(map[Rarity][]int),
	}

	for i, src := range sources {
		name := strings.TrimSpace(src.Name)
		if name == "" {
			return nil, fmt.Errorf("card #%d has no name", i+1)
		}
		if n := utf8.RuneCountInString(name); n > MaxNameLength {
			return nil, fmt.Errorf("card #%d name is %d characters long, the limit is %d", i+1, n, MaxNameLength)
		}
		key := normalizeName(name)
		if _, dup := cat.byName[key]; dup {
			return nil, fmt.Errorf("duplicate card name %q", name)
		}

		rarity, err := ParseRarity(src.Rarity)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", name, err)
		}

		image, err := resolveImage(src.Image, options.imageBaseURL)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", name, err)
		}

		idx := len(cat.cards)
		cat.cards = append(cat.cards, Card{Name: name, Rarity: rarity, ImageRef: image})
		cat.byName[key] = idx
		cat.byRarity[rarity] = append(cat.byRarity[rarity], idx)
	}

	return cat, nil
}

// resolveImage makes image absolute against base. A rooted path such as
// "/images/fox.png" is served as is; a bare file name lives under /images.
func resolveImage(image, base string) (string, error) {
	image = strings.TrimSpace(image)
	if image == "" || base == "" || strings.Contains(image, "://") {
		return image, nil
	}
	elems := []string{"images", image}
	if strings.HasPrefix(image, "/") {
		elems = []string{image}
	}
	resolved, err := url.JoinPath(base, elems...)
	if err != nil {
		return "", fmt.Errorf("invalid image path %q: %w", image, err)
	}
	return resolved, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindByName looks a card up by name, case-insensitively
func (c *Catalog) FindByName(name string) (Card, bool) {
	idx, ok := c.byName[normalizeName(name)]
	if !ok {
		return Card{}, false
	}
	return c.cards[idx], true
}

// FindByRarity returns the first card declared with the given rarity
func (c *Catalog) FindByRarity(tier Tier, variant Variant) (Card, bool) {
	idxs := c.byRarity[Rarity{Tier: tier, Variant: variant}]
	if len(idxs) == 0 {
		return Card{}, false
	}
	return c.cards[idxs[0]], true
}

// CardsByRarity returns every card with the given rarity in declaration order
func (c *Catalog) CardsByRarity(r Rarity) []Card {
	idxs := c.byRarity[r]
	out := make([]Card, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, c.cards[idx])
	}
	return out
}

// All returns every card in declaration order
func (c *Catalog) All() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Len returns the number of cards
func (c *Catalog) Len() int {
	return len(c.cards)
}

// MissingRarities lists the weighted rarities that no card carries. A draw
// landing on one of them cannot be fulfilled.
func (c *Catalog) MissingRarities(weights *WeightTable) []Rarity {
	var missing []Rarity
	for _, e := range weights.Entries() {
		if len(c.byRarity[e.Rarity]) == 0 {
			missing = append(missing, e.Rarity)
		}
	}
	return missing
}

// UnweightedRarities lists catalog rarities with no weight. Cards with
// these rarities can be granted but never drawn.
func (c *Catalog) UnweightedRarities(weights *WeightTable) []Rarity {
	var out []Rarity
	for _, tier := range Tiers {
		for _, variant := range Variants {
			r := Rarity{Tier: tier, Variant: variant}
			if len(c.byRarity[r]) > 0 && weights.Weight(r) == 0 {
				out = append(out, r)
			}
		}
	}
	return out
}
