package db

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "bloom-clean.db"))

	dayLogColumns := loadTableColumns(t, database, "day_logs")
	for _, column := range []string{"date", "is_period", "intensity", "symptoms", "moods", "notes", "medical_notes", "water_intake", "sleep_hours"} {
		if _, exists := dayLogColumns[column]; !exists {
			t.Fatalf("expected day_logs.%s column to exist after migrations", column)
		}
	}

	settingsColumns := loadTableColumns(t, database, "user_settings")
	for _, column := range []string{"avg_cycle_length", "avg_period_length", "last_period_start_manual", "theme"} {
		if _, exists := settingsColumns[column]; !exists {
			t.Fatalf("expected user_settings.%s column to exist after migrations", column)
		}
	}

	statuses, err := MigrationStatuses(database)
	if err != nil {
		t.Fatalf("load migration statuses: %v", err)
	}
	if len(statuses) == 0 || statuses[0].Version != "001" || statuses[0].File != "001_init.sql" {
		t.Fatalf("expected 001 migration first, got %+v", statuses)
	}
	for _, status := range statuses {
		if !status.Applied || status.AppliedAt == "" {
			t.Fatalf("expected %s to be recorded as applied, got %+v", status.File, status)
		}
	}
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "bloom-idempotent.db")

	firstOpen, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstRecords, err := MigrationStatuses(firstOpen)
	if err != nil {
		t.Fatalf("load first migration statuses: %v", err)
	}
	if err := Close(firstOpen); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	secondOpen := openSQLiteForTest(t, databasePath)
	secondRecords, err := MigrationStatuses(secondOpen)
	if err != nil {
		t.Fatalf("load second migration statuses: %v", err)
	}
	if !reflect.DeepEqual(firstRecords, secondRecords) {
		t.Fatalf("expected migration records to remain unchanged between boots, before=%v after=%v", firstRecords, secondRecords)
	}
}

func TestLoadEmbeddedMigrationsOrdersByVersionAndRejectsDuplicates(t *testing.T) {
	files := fstest.MapFS{
		"010_later.sql": {Data: []byte("SELECT 1;")},
		"002_second.sql": {Data: []byte("SELECT 2;")},
		"README.md":      {Data: []byte("ignored")},
	}
	migrations, err := readMigrations(files)
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if len(migrations) != 2 || migrations[0].version != "002" || migrations[1].version != "010" {
		t.Fatalf("unexpected migration order: %+v", migrations)
	}
	if len(migrations[1].statements) != 1 || migrations[1].statements[0] != "SELECT 1" {
		t.Fatalf("unexpected statements: %v", migrations[1].statements)
	}

	files["002_duplicate.sql"] = &fstest.MapFile{Data: []byte("SELECT 3;")}
	if _, err := readMigrations(files); err == nil {
		t.Fatal("expected duplicate migration version to fail")
	}
}

func TestMigrationStatusesReportsPendingMigrations(t *testing.T) {
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "bloom-pending.db"))
	if err := database.Exec(`DELETE FROM schema_migrations WHERE version = ?`, "001").Error; err != nil {
		t.Fatalf("forget migration: %v", err)
	}

	statuses, err := MigrationStatuses(database)
	if err != nil {
		t.Fatalf("load migration statuses: %v", err)
	}
	if len(statuses) == 0 || statuses[0].Applied || statuses[0].AppliedAt != "" {
		t.Fatalf("expected 001 to be pending, got %+v", statuses)
	}

	if err := migrate(database); err != nil {
		t.Fatalf("re-run migrations: %v", err)
	}
	statuses, err = MigrationStatuses(database)
	if err != nil {
		t.Fatalf("reload migration statuses: %v", err)
	}
	if !statuses[0].Applied {
		t.Fatalf("expected 001 to be applied again, got %+v", statuses[0])
	}
}

func TestSplitSQLStatementsDropsEmptyParts(t *testing.T) {
	statements := splitSQLStatements("CREATE TABLE a (id INT);\n\n ;CREATE TABLE b (id INT);")
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(statements), statements)
	}
}

func openSQLiteForTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(database)
	})
	return database
}

func loadTableColumns(t *testing.T, database *gorm.DB, tableName string) map[string]struct{} {
	t.Helper()

	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(tableName, `"`, `""`))
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
