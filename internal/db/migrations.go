package db

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/bloom/migrations"
	"gorm.io/gorm"
)

// Migration files are named NNN_description.sql and run in numeric order.
var migrationNamePattern = regexp.MustCompile(`^(\d+)_[^/]*\.sql$`)

type schemaMigration struct {
	version    string
	sequence   int
	file       string
	statements []string
}

// MigrationStatus reports one embedded migration and whether the database
// has recorded it. AppliedAt is empty for pending migrations.
type MigrationStatus struct {
	Version   string `json:"version" yaml:"version"`
	File      string `json:"file" yaml:"file"`
	Applied   bool   `json:"applied" yaml:"applied"`
	AppliedAt string `json:"appliedAt,omitempty" yaml:"appliedAt,omitempty"`
}

type appliedMigration struct {
	Version   string `gorm:"column:version"`
	AppliedAt string `gorm:"column:applied_at"`
}

func migrate(database *gorm.DB) error {
	statuses, migrations, err := collectMigrationStatuses(database)
	if err != nil {
		return err
	}
	for index, status := range statuses {
		if status.Applied {
			continue
		}
		if err := runMigration(database, migrations[index]); err != nil {
			return err
		}
	}
	return nil
}

// MigrationStatuses lists every embedded migration in run order.
func MigrationStatuses(database *gorm.DB) ([]MigrationStatus, error) {
	statuses, _, err := collectMigrationStatuses(database)
	return statuses, err
}

func collectMigrationStatuses(database *gorm.DB) ([]MigrationStatus, []schemaMigration, error) {
	if err := database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return nil, nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	migrations, err := readMigrations(embeddedmigrations.Files)
	if err != nil {
		return nil, nil, err
	}

	var recorded []appliedMigration
	if err := database.Raw(`SELECT version, applied_at FROM schema_migrations`).Scan(&recorded).Error; err != nil {
		return nil, nil, fmt.Errorf("load schema_migrations: %w", err)
	}
	appliedAt := make(map[string]string, len(recorded))
	for _, row := range recorded {
		appliedAt[row.Version] = row.AppliedAt
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, migration := range migrations {
		at, applied := appliedAt[migration.version]
		statuses = append(statuses, MigrationStatus{
			Version:   migration.version,
			File:      migration.file,
			Applied:   applied,
			AppliedAt: at,
		})
	}
	return statuses, migrations, nil
}

func readMigrations(files fs.FS) ([]schemaMigration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	byVersion := make(map[string]string, len(entries))
	migrations := make([]schemaMigration, 0, len(entries))
	for _, entry := range entries {
		match := migrationNamePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || match == nil {
			continue
		}
		if previous, duplicate := byVersion[match[1]]; duplicate {
			return nil, fmt.Errorf("migrations %s and %s share version %s", previous, entry.Name(), match[1])
		}
		byVersion[match[1]] = entry.Name()

		sequence, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", entry.Name(), err)
		}
		body, err := fs.ReadFile(files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, schemaMigration{
			version:    match[1],
			sequence:   sequence,
			file:       entry.Name(),
			statements: splitSQLStatements(string(body)),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].sequence < migrations[j].sequence
	})
	return migrations, nil
}

func runMigration(database *gorm.DB, migration schemaMigration) error {
	if len(migration.statements) == 0 {
		return fmt.Errorf("migration %s is empty", migration.file)
	}
	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range migration.statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %w", migration.file, err)
			}
		}
		return tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, migration.version, migration.file).Error
	})
}

func splitSQLStatements(script string) []string {
	var statements []string
	for _, part := range strings.Split(script, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
