package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/latoulicious/boosterbot/pkg/assets"
	"github.com/latoulicious/boosterbot/pkg/catalog"
	"github.com/latoulicious/boosterbot/pkg/logging"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// DiscordConfig holds the bot credentials
type DiscordConfig struct {
	Token     string `yaml:"token" toml:"token" env:"BOT_TOKEN"`
	ClientID  string `yaml:"client_id" toml:"client_id" env:"CLIENT_ID"`
	GuildID   string `yaml:"guild_id" toml:"guild_id" env:"GUILD_ID"`
	StaffRole string `yaml:"staff_role" toml:"staff_role" env:"STAFF_ROLE"`
}

// BoosterConfig holds the draw rules. Weights is keyed by tier then variant
// and accepts the same aliases as catalog rarity labels; empty means the
// stock table.
type BoosterConfig struct {
	Cooldown time.Duration                 `yaml:"cooldown" toml:"cooldown" env:"BOOSTER_COOLDOWN"`
	Seed     uint64                        `yaml:"seed" toml:"seed" env:"BOOSTER_SEED"`
	Weights  map[string]map[string]float64 `yaml:"weights" toml:"weights"`
}

// CatalogConfig locates the card catalog
type CatalogConfig struct {
	Path     string `yaml:"path" toml:"path" env:"CATALOG_PATH"`
	Required bool   `yaml:"required" toml:"required" env:"CATALOG_REQUIRED"`
}

// StorageConfig selects the player store
type StorageConfig struct {
	Driver      string `yaml:"driver" toml:"driver" env:"STORAGE_DRIVER"`
	Path        string `yaml:"path" toml:"path" env:"STORE_PATH"`
	DatabaseURL string `yaml:"database_url" toml:"database_url" env:"DATABASE_URL"`
}

// PresenceConfig drives the rotating bot status
type PresenceConfig struct {
	Statuses []string `yaml:"statuses" toml:"statuses" env:"PRESENCE_STATUSES" envSeparator:"|"`
	Schedule string   `yaml:"schedule" toml:"schedule" env:"PRESENCE_SCHEDULE"`
}

// Config is the complete bot configuration
type Config struct {
	Discord  DiscordConfig  `yaml:"discord" toml:"discord"`
	Booster  BoosterConfig  `yaml:"booster" toml:"booster"`
	Catalog  CatalogConfig  `yaml:"catalog" toml:"catalog"`
	Storage  StorageConfig  `yaml:"storage" toml:"storage"`
	Assets   assets.Config  `yaml:"assets" toml:"assets"`
	Logger   logging.Config `yaml:"logger" toml:"logger"`
	Presence PresenceConfig `yaml:"presence" toml:"presence"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Discord: DiscordConfig{
			StaffRole: "Staff",
		},
		Booster: BoosterConfig{
			Cooldown: 3 * time.Hour,
		},
		Catalog: CatalogConfig{
			Path:     "cards.json",
			Required: true,
		},
		Storage: StorageConfig{
			Driver: StorageFile,
			Path:   "data.json",
		},
		Assets: assets.Config{
			Addr:      ":3000",
			Dir:       "images",
			PublicURL: "http://localhost:3000",
			Metrics:   true,
		},
		Logger: logging.DefaultConfig(),
		Presence: PresenceConfig{
			Statuses: []string{
				"Come try your luck!",
				"Collect them all!",
				"/pc-open to draw a card",
			},
			Schedule: "@every 10s",
		},
	}
}

// Load reads configuration from ./config and the environment
func Load() (*Config, error) {
	return LoadFrom("config")
}

// LoadFrom builds the configuration in order: .env file, defaults,
// <dir>/bot.yaml or else <dir>/bot.toml, environment variables. The result
// is validated.
func LoadFrom(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	if err := loadFile(dir, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func loadFile(dir string, cfg *Config) error {
	yamlPath := filepath.Join(dir, "bot.yaml")
	data, err := os.ReadFile(yamlPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config %s: %w", yamlPath, err)
		}
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to read YAML config %s: %w", yamlPath, err)
	}

	tomlPath := filepath.Join(dir, "bot.toml")
	if _, err := toml.DecodeFile(tomlPath, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to parse TOML config %s: %w", tomlPath, err)
	}
	return nil
}

// Validate checks everything except the Discord credentials, which only the
// bot itself needs.
func (c *Config) Validate() error {
	if c.Booster.Cooldown < 0 {
		return fmt.Errorf("booster cooldown must not be negative, got %s", c.Booster.Cooldown)
	}
	if _, err := c.WeightTable(); err != nil {
		return fmt.Errorf("invalid booster weights: %w", err)
	}
	if c.Catalog.Path == "" {
		return errors.New("catalog path is required")
	}

	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.Path == "" {
			return errors.New("storage path is required for the file driver")
		}
	case StoragePostgres, StorageSQLite:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("database url is required for the %s driver", c.Storage.Driver)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Logger.SaveToDB && c.Storage.Driver != StoragePostgres && c.Storage.Driver != StorageSQLite {
		return errors.New("logger.save_to_db needs a database storage driver")
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if len(c.Presence.Statuses) > 0 {
		if _, err := cron.ParseStandard(c.Presence.Schedule); err != nil {
			return fmt.Errorf("invalid presence schedule %q: %w", c.Presence.Schedule, err)
		}
	}
	return nil
}

// ValidateBot additionally requires the Discord credentials
func (c *Config) ValidateBot() error {
	if c.Discord.Token == "" {
		return errors.New("BOT_TOKEN is required")
	}
	if c.Discord.ClientID == "" {
		return errors.New("CLIENT_ID is required")
	}
	return c.Validate()
}

// WeightTable builds the configured draw weights
func (c *Config) WeightTable() (*catalog.WeightTable, error) {
	if len(c.Booster.Weights) == 0 {
		return catalog.DefaultWeightTable(), nil
	}
	return catalog.ParseWeightTable(c.Booster.Weights)
}
