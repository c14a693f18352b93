package db

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	embeddedmigrations "github.com/pedrohqs/atrio/migrations"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "atrio-clean.db")
	database := openSQLiteForBootstrapTest(t, databasePath)

	for _, tableName := range []string{
		"users", "products", "materials", "notifications", "notification_reads",
		"goals", "goal_progress", "tickets", "ticket_messages",
	} {
		if !database.Migrator().HasTable(tableName) {
			t.Fatalf("expected %s table to exist after migrations", tableName)
		}
	}

	columns := loadTableColumns(t, database, "tickets")
	if _, exists := columns["assigned_to_id"]; !exists {
		t.Fatal("expected tickets.assigned_to_id column after migrations")
	}

	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteUpgradesPreAssigneeSchema(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "atrio-upgrade.db")
	seedInitOnlySchema(t, databasePath)

	database := openSQLiteForBootstrapTest(t, databasePath)

	columns := loadTableColumns(t, database, "tickets")
	if _, exists := columns["assigned_to_id"]; !exists {
		t.Fatal("expected assigned_to_id to be added on upgrade")
	}

	var survivor struct {
		Subject string `gorm:"column:subject"`
	}
	if err := database.Raw(`SELECT subject FROM tickets WHERE subject = ?`, "pre-upgrade").Scan(&survivor).Error; err != nil {
		t.Fatalf("load pre-upgrade ticket: %v", err)
	}
	if survivor.Subject != "pre-upgrade" {
		t.Fatal("expected existing ticket rows to survive the upgrade")
	}

	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "atrio-idempotent.db")

	firstOpen, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstRecords := loadMigrationRecords(t, firstOpen)

	firstSQLDB, err := firstOpen.DB()
	if err != nil {
		t.Fatalf("first open sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	secondOpen := openSQLiteForBootstrapTest(t, databasePath)
	secondRecords := loadMigrationRecords(t, secondOpen)

	if !reflect.DeepEqual(firstRecords, secondRecords) {
		t.Fatalf("expected migration records to remain unchanged between boots, before=%v after=%v", firstRecords, secondRecords)
	}
}

func openSQLiteForBootstrapTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

// seedInitOnlySchema replays only the initial migration, mimicking a database
// created before the ticket assignee column existed.
func seedInitOnlySchema(t *testing.T, databasePath string) {
	t.Helper()

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", databasePath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open seed sqlite: %v", err)
	}

	initSQL, err := fs.ReadFile(embeddedmigrations.Files, "0001_init.sql")
	if err != nil {
		t.Fatalf("read init migration: %v", err)
	}
	for _, statement := range splitSQLStatements(string(initSQL)) {
		if err := database.Exec(statement).Error; err != nil {
			t.Fatalf("apply init statement: %v", err)
		}
	}

	if err := database.Exec(
		`INSERT INTO users (email, password_hash, full_name, role, is_active, created_at) VALUES (?, ?, ?, ?, 1, CURRENT_TIMESTAMP)`,
		"seed@example.com", "seed-hash", "Seed", "vendedor",
	).Error; err != nil {
		t.Fatalf("insert seed user: %v", err)
	}
	if err := database.Exec(
		`INSERT INTO tickets (subject, body, status, opened_by_id, created_at) VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP)`,
		"pre-upgrade", "corpo", "open",
	).Error; err != nil {
		t.Fatalf("insert seed ticket: %v", err)
	}

	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`).Error; err != nil {
		t.Fatalf("create schema_migrations: %v", err)
	}
	if err := database.Exec(
		`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
		"0001", "0001_init.sql",
	).Error; err != nil {
		t.Fatalf("record init migration: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open seed sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close seed sql db: %v", err)
	}
}

func assertAllEmbeddedMigrationsApplied(t *testing.T, database *gorm.DB) {
	t.Helper()

	migrations, err := loadEmbeddedMigrations()
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}
	expectedVersions := make([]string, 0, len(migrations))
	for _, migration := range migrations {
		expectedVersions = append(expectedVersions, migration.Version)
	}

	var rows []struct {
		Version string `gorm:"column:version"`
	}
	if err := database.Raw(`SELECT version FROM schema_migrations ORDER BY version ASC`).Scan(&rows).Error; err != nil {
		t.Fatalf("load applied migration versions: %v", err)
	}
	actualVersions := make([]string, 0, len(rows))
	for _, row := range rows {
		actualVersions = append(actualVersions, row.Version)
	}

	if !reflect.DeepEqual(expectedVersions, actualVersions) {
		t.Fatalf("unexpected applied migration versions: expected=%v actual=%v", expectedVersions, actualVersions)
	}
}

type migrationRecord struct {
	Version   string `gorm:"column:version"`
	Name      string `gorm:"column:name"`
	AppliedAt string `gorm:"column:applied_at"`
}

func loadMigrationRecords(t *testing.T, database *gorm.DB) []migrationRecord {
	t.Helper()

	records := make([]migrationRecord, 0)
	if err := database.Raw(
		`SELECT version, name, applied_at FROM schema_migrations ORDER BY version ASC`,
	).Scan(&records).Error; err != nil {
		t.Fatalf("load migration records: %v", err)
	}
	return records
}

func loadTableColumns(t *testing.T, database *gorm.DB, tableName string) map[string]struct{} {
	t.Helper()

	escapedTable := strings.ReplaceAll(tableName, `"`, `""`)
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, escapedTable)

	var rows []struct {
		Name string `gorm:"column:name"`
	}
	if err := database.Raw(query).Scan(&rows).Error; err != nil {
		t.Fatalf("load table columns for %s: %v", tableName, err)
	}

	columns := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		columns[strings.ToLower(strings.TrimSpace(row.Name))] = struct{}{}
	}
	return columns
}
