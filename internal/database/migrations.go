package database

import (
	"database/sql"
	"log/slog"
	"sort"

	"github.com/edibridge/onboard/internal/errl"
)

type migration struct {
	id   string
	up   func(db *sql.DB) error
	down func(db *sql.DB) error
}

var migrations []migration

// RegisterMigration adds a migration to the registry. Migrations run in
// lexical order of their id, which is a timestamp.
func RegisterMigration(id string, up, down func(db *sql.DB) error) {
	migrations = append(migrations, migration{id: id, up: up, down: down})
}

// RunMigrationsUp applies every registered migration that has not been
// applied yet, recording each in the schema_migrations table.
func RunMigrationsUp(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		id TEXT PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return errl.Errorf("failed to create schema_migrations table: %w", err)
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].id < migrations[j].id })

	for _, m := range migrations {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE id = ?", m.id).Scan(&count); err != nil {
			return errl.Errorf("failed to check migration %s: %w", m.id, err)
		}
		if count > 0 {
			continue
		}
		if err := m.up(db); err != nil {
			return errl.Errorf("migration %s failed: %w", m.id, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (id) VALUES (?)", m.id); err != nil {
			return errl.Errorf("failed to record migration %s: %w", m.id, err)
		}
		slog.Info("Applied migration", "id", m.id)
	}

	return nil
}
