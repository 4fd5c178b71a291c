package main

import (
	"flag"
	"log"
	"os"

	"github.com/latoulicious/boosterbot/internal/config"
	"github.com/latoulicious/boosterbot/pkg/database"
	"github.com/latoulicious/boosterbot/pkg/database/migration"
	"github.com/latoulicious/boosterbot/pkg/database/models"
	"github.com/latoulicious/boosterbot/tools"
)

func main() {
	resetFlag := flag.Bool("reset", false, "Drop the bot tables before migrating")
	statsFlag := flag.Bool("stats", false, "Print row counts after migrating")
	checkFlag := flag.Bool("check", false, "Run the connectivity check before migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Storage.Driver != config.StoragePostgres && cfg.Storage.Driver != config.StorageSQLite {
		log.Fatalf("Storage driver %q has no database to migrate", cfg.Storage.Driver)
	}

	if *checkFlag {
		if err := tools.DBCheck(cfg.Storage.Driver, cfg.Storage.DatabaseURL, os.Stdout); err != nil {
			log.Fatalf("Database check failed: %v", err)
		}
	}

	db, err := database.Open(cfg.Storage.Driver, cfg.Storage.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	manager := database.NewDatabaseManager(db)
	defer manager.Close()
	log.Printf("Connected to %s database", cfg.Storage.Driver)

	if *resetFlag {
		log.Println("Resetting database...")
		if err := db.Migrator().DropTable(&models.PlayerRecordRow{}, &models.BotLog{}); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Database reset successfully")
	}

	log.Println("Running migrations...")
	if err := migration.RunMigration(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if *statsFlag {
		stats, err := manager.Stats()
		if err != nil {
			log.Fatalf("Failed to read stats: %v", err)
		}
		for table, count := range stats {
			log.Printf("%s: %v rows", table, count)
		}
	}
}
