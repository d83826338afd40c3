package db

import (
	"database/sql"
	"fmt"
)

// The settings table is a plain key/value store. Structured values
// (saved translation list, translation settings) are stored as JSON.
const baseSchema = `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}
	return nil
}
