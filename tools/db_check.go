package tools

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/latoulicious/boosterbot/pkg/database"
	"github.com/latoulicious/boosterbot/pkg/database/models"
	"gorm.io/gorm"
)

// DBCheck verifies that the configured database is reachable, reports its
// version and pool stats, the bot tables and runs a rolled back transaction.
func DBCheck(driver, dsn string, w io.Writer) error {
	fmt.Fprintf(w, "=== %s Database Connectivity Check ===\n", driver)

	fmt.Fprintln(w, "📡 Connecting to database...")
	db, err := database.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	manager := database.NewDatabaseManager(db)
	defer manager.Close()
	fmt.Fprintln(w, "✅ Database connection established")

	fmt.Fprintln(w, "🏓 Testing database ping...")
	if err := manager.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	fmt.Fprintln(w, "✅ Database ping successful")

	versionQuery := "SELECT version()"
	if driver == database.DriverSQLite {
		versionQuery = "SELECT sqlite_version()"
	}
	var version string
	if err := db.Raw(versionQuery).Scan(&version).Error; err != nil {
		return fmt.Errorf("failed to get database version: %w", err)
	}
	fmt.Fprintf(w, "✅ Server version: %s\n", version)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	stats := sqlDB.Stats()
	fmt.Fprintln(w, "📊 Connection pool stats:")
	fmt.Fprintf(w, "   - Open connections: %d\n", stats.OpenConnections)
	fmt.Fprintf(w, "   - In use: %d\n", stats.InUse)
	fmt.Fprintf(w, "   - Idle: %d\n", stats.Idle)

	fmt.Fprintln(w, "🗃️  Checking bot tables...")
	checkTables(db, manager, w)

	fmt.Fprintln(w, "🔄 Testing transaction capability...")
	if err := testTransactionCapability(db); err != nil {
		return fmt.Errorf("transaction test failed: %w", err)
	}
	fmt.Fprintln(w, "✅ Transaction capability verified")

	start := time.Now()
	var one int
	if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		return fmt.Errorf("performance test failed: %w", err)
	}
	duration := time.Since(start)
	fmt.Fprintf(w, "⚡ Simple query completed in %v\n", duration)
	if duration > 5*time.Second {
		fmt.Fprintln(w, "⚠️  Query took longer than 5 seconds - check network latency")
	}

	fmt.Fprintln(w, "=== Database Connectivity Check Complete ===")
	return nil
}

func checkTables(db *gorm.DB, manager *database.DatabaseManager, w io.Writer) {
	missing := []string{}
	for _, model := range []interface{}{&models.PlayerRecordRow{}, &models.BotLog{}} {
		if !db.Migrator().HasTable(model) {
			stmt := &gorm.Statement{DB: db}
			if err := stmt.Parse(model); err == nil {
				missing = append(missing, stmt.Schema.Table)
			}
		}
	}

	if len(missing) > 0 {
		fmt.Fprintf(w, "   ⚠️  Missing tables (run the migration): %v\n", missing)
		return
	}

	counts, err := manager.Stats()
	if err != nil {
		fmt.Fprintf(w, "   ⚠️  Failed to count rows: %v\n", err)
		return
	}
	fmt.Fprintln(w, "   ✅ All bot tables exist")
	for table, count := range counts {
		fmt.Fprintf(w, "   📊 %s: %v rows\n", table, count)
	}
}

var errRollback = errors.New("rollback")

// testTransactionCapability writes a row inside a transaction that is always
// rolled back
func testTransactionCapability(db *gorm.DB) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("CREATE TEMPORARY TABLE test_transaction (id INTEGER PRIMARY KEY, test_data TEXT)").Error; err != nil {
			return fmt.Errorf("failed to create temporary table: %w", err)
		}
		if err := tx.Exec("INSERT INTO test_transaction (id, test_data) VALUES (1, 'test')").Error; err != nil {
			return fmt.Errorf("failed to insert test data: %w", err)
		}
		var count int64
		if err := tx.Raw("SELECT COUNT(*) FROM test_transaction").Scan(&count).Error; err != nil {
			return fmt.Errorf("failed to read test data: %w", err)
		}
		if count != 1 {
			return fmt.Errorf("expected 1 test row, found %d", count)
		}
		return errRollback
	})
	if errors.Is(err, errRollback) {
		return nil
	}
	return err
}
