// Package sqlite backs the runtime-writable settings store. Project data
// itself lives in the JSON document; settings need single-value writes at
// runtime (the auto-backup heuristic updates its last-count marker on every
// save), which a flat config file handles poorly.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New opens (creating if needed) the settings database.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// The app is the only writer; a single connection avoids lock churn.
	db.SetMaxOpenConns(1)

	wrapped := &DB{db}
	if err := wrapped.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return wrapped, nil
}

func (db *DB) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS settings (
	section TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (section, key)
);`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create settings schema: %w", err)
	}
	return nil
}
