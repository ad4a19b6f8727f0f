package database

import (
	"database/sql"
)

func init() {
	RegisterMigration("20260115T102200", migration_up_20260115T102200, nil)
}

func migration_up_20260115T102200(db *sql.DB) error {

	// Add a column with the URL of the created tracking task
	_, err := db.Exec(`
		ALTER TABLE submission_attempts
		ADD COLUMN task_url TEXT NOT NULL DEFAULT '';
	`)
	if err != nil {
		return err
	}

	return nil
}
