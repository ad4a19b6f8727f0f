package database

import (
	"database/sql"
	"log/slog"

	"github.com/edibridge/onboard/internal/errl"
	_ "github.com/mattn/go-sqlite3"
)

// Database manages SQLite operations. It holds the submission attempt log:
// form sessions themselves live only in memory, but every submission attempt
// and its outcome is recorded here.
type Database struct {
	path string
	db   *sql.DB
}

// New creates a new database instance backed by the file at path.
func New(path string) *Database {
	if path == "" {
		path = "./onboard.db"
	}
	return &Database{path: path}
}

// Initialize opens the database and creates tables
func (d *Database) Initialize() error {
	db, err := sql.Open("sqlite3", d.path)
	if err != nil {
		return errl.Errorf("failed to open database: %w", err)
	}
	d.db = db

	// Create tables
	if err := d.createTables(); err != nil {
		return errl.Errorf("failed to create tables: %w", err)
	}

	slog.Info("Database initialized", "path", d.path)
	return nil
}

// createTables creates all necessary tables
func (d *Database) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS submission_attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_name TEXT NOT NULL,
			contact_email TEXT,
			status TEXT NOT NULL,
			fail_reason TEXT,
			api_success INTEGER NOT NULL DEFAULT 0,
			api_error TEXT,
			task_id TEXT,
			task_name TEXT,
			payload BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return errl.Errorf("failed to execute query: %w", err)
		}
	}

	// Run the migrations
	if err := RunMigrationsUp(d.db); err != nil {
		return errl.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
