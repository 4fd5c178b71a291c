package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/boosterbot/internal/commands"
	"github.com/latoulicious/boosterbot/internal/config"
	"github.com/latoulicious/boosterbot/internal/presence"
	"github.com/latoulicious/boosterbot/internal/version"
	"github.com/latoulicious/boosterbot/pkg/assets"
	"github.com/latoulicious/boosterbot/pkg/booster"
	"github.com/latoulicious/boosterbot/pkg/catalog"
	"github.com/latoulicious/boosterbot/pkg/database"
	"github.com/latoulicious/boosterbot/pkg/database/migration"
	"github.com/latoulicious/boosterbot/pkg/database/repository"
	"github.com/latoulicious/boosterbot/pkg/logging"
	"github.com/latoulicious/boosterbot/pkg/metrics"
	"github.com/latoulicious/boosterbot/pkg/store"
)

func main() {
	if err := initializeApplication(); err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}
}

// initializeApplication wires every component, runs until SIGINT/SIGTERM
// and shuts down in reverse order
func initializeApplication() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	base, logCloser, err := logging.Build(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logCloser.Close()
	defer base.Sync()

	factory := logging.NewLoggerFactory(base)
	logging.SetGlobalLoggerFactory(factory)

	playerStore, db, err := openStore(cfg, factory)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if cfg.Logger.SaveToDB {
			factory = logging.NewLoggerFactory(base, logging.WithRepository(repository.NewLogRepository(db.DB())))
			logging.SetGlobalLoggerFactory(factory)
		}
	}

	systemLogger := factory.CreateLogger("system")
	systemLogger.Info("Starting boosterbot", map[string]interface{}{
		"version": version.Get().String(),
		"storage": cfg.Storage.Driver,
	})

	m := metrics.New()

	engine, err := buildEngine(cfg, systemLogger)
	if err != nil {
		return err
	}

	service := booster.NewService(engine, playerStore,
		booster.WithLogger(factory.CreateLogger("booster")),
		booster.WithMetrics(m),
	)

	server := assets.NewServer(cfg.Assets, factory.CreateLogger("assets"), healthOptions(cfg, service, db, m)...)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start asset server: %w", err)
	}

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	handler := commands.NewHandler(service, cfg.Discord.StaffRole)
	dg.AddHandler(handler.OnInteraction)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		registered, err := commands.Register(s, cfg.Discord.ClientID, cfg.Discord.GuildID)
		if err != nil {
			systemLogger.Error("Failed to register slash commands", err, nil)
			return
		}
		systemLogger.Info("Slash commands registered", map[string]interface{}{
			"count":    len(registered),
			"guild_id": cfg.Discord.GuildID,
			"as":       r.User.Username,
		})
	})

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	presenceManager := presence.NewPresenceManager(dg, cfg.Presence.Statuses, cfg.Presence.Schedule, factory.CreateLogger("presence"))
	if err := presenceManager.Start(); err != nil {
		systemLogger.Error("Failed to start presence rotation", err, nil)
	}

	systemLogger.Info("Bot is running. Press CTRL-C to exit.", map[string]interface{}{
		"assets_addr": cfg.Assets.Addr,
	})

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	systemLogger.Info("Shutting down gracefully...", nil)

	presenceManager.Stop()
	if err := dg.Close(); err != nil {
		systemLogger.Error("Failed to close Discord session", err, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		systemLogger.Error("Asset server shutdown error", err, nil)
	}

	systemLogger.Info("Application shutdown complete", nil)
	return nil
}

// openStore returns the player store for the configured driver. The manager
// is nil unless a database driver is selected.
func openStore(cfg *config.Config, factory logging.LoggerFactory) (booster.Store, *database.DatabaseManager, error) {
	logger := factory.CreateStoreLogger(cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn("Using the in-memory store, progress is lost on restart", nil)
		return store.NewMemoryStore(), nil, nil

	case config.StorageFile:
		fileStore, err := store.OpenFileStore(cfg.Storage.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open store: %w", err)
		}
		return fileStore, nil, nil

	case config.StoragePostgres, config.StorageSQLite:
		gormDB, err := database.Open(cfg.Storage.Driver, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		manager := database.NewDatabaseManager(gormDB)
		if err := migration.RunMigration(gormDB); err != nil {
			manager.Close()
			return nil, nil, err
		}
		return store.NewGormStore(gormDB, logger), manager, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// buildEngine loads the catalog. Without a catalog the engine is nil and the
// bot runs degraded, unless the catalog is required.
func buildEngine(cfg *config.Config, logger logging.Logger) (*booster.Engine, error) {
	weights, err := cfg.WeightTable()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.Catalog.Path, catalog.WithImageBaseURL(cfg.Assets.PublicURL))
	if err != nil {
		if cfg.Catalog.Required {
			return nil, fmt.Errorf("failed to load card catalog: %w", err)
		}
		logger.Error("Card catalog unavailable, running without it", err, map[string]interface{}{
			"path": cfg.Catalog.Path,
		})
		return nil, nil
	}

	seed := cfg.Booster.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	logger.Info("Card catalog loaded", map[string]interface{}{
		"path":     cfg.Catalog.Path,
		"cards":    cat.Len(),
		"cooldown": cfg.Booster.Cooldown.String(),
	})
	return booster.NewEngine(cat, weights, rng, cfg.Booster.Cooldown), nil
}

func healthOptions(cfg *config.Config, service *booster.Service, db *database.DatabaseManager, m *metrics.Metrics) []assets.Option {
	opts := []assets.Option{
		assets.WithHealthCheck("catalog", func() error {
			if service.Degraded() {
				return errors.New("catalog not loaded")
			}
			return nil
		}),
	}
	if db != nil {
		opts = append(opts, assets.WithHealthCheck("database", db.Ping))
	}
	if cfg.Assets.Metrics {
		opts = append(opts, assets.WithMetricsHandler(m.Handler()))
	}
	return opts
}
