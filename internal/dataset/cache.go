package dataset

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Cache persists parsed trials in a sqlite file so repeated commands skip
// re-reading and re-validating the CSV.
type Cache struct {
	db   *sql.DB
	path string
}

// OpenCache opens (creating if needed) the trial cache at path.
func OpenCache(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}
	const schema = `
	CREATE TABLE IF NOT EXISTS trials (
		seq             INTEGER PRIMARY KEY,
		id              TEXT NOT NULL,
		run             TEXT NOT NULL,
		system          TEXT NOT NULL,
		noise           REAL NOT NULL,
		has_result      INTEGER NOT NULL,
		result          TEXT NOT NULL,
		true_parameters TEXT NOT NULL,
		true_states     TEXT NOT NULL,
		time            REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trials_run ON trials(run);
	CREATE INDEX IF NOT EXISTS idx_trials_system_noise ON trials(system, noise);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &Cache{db: db, path: path}, nil
}

// Put replaces the cached table.
func (c *Cache) Put(t Table) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trials`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO trials
		(seq, id, run, system, noise, has_result, result, true_parameters, true_states, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, trial := range t {
		hasResult := 0
		if trial.HasResult {
			hasResult = 1
		}
		if _, err := stmt.Exec(i, trial.ID, trial.Run, trial.System, trial.Noise,
			hasResult, trial.Result, trial.TrueParameters, trial.TrueStates, trial.Time); err != nil {
			return fmt.Errorf("failed to cache trial %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Load returns the cached table in insertion order. An empty cache yields
// an empty table and no error.
func (c *Cache) Load() (Table, error) {
	rows, err := c.db.Query(`SELECT id, run, system, noise, has_result,
		result, true_parameters, true_states, time
		FROM trials ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var table Table
	for rows.Next() {
		var trial Trial
		var hasResult int
		if err := rows.Scan(&trial.ID, &trial.Run, &trial.System, &trial.Noise,
			&hasResult, &trial.Result, &trial.TrueParameters, &trial.TrueStates, &trial.Time); err != nil {
			return nil, err
		}
		trial.HasResult = hasResult != 0
		table = append(table, trial)
	}
	return table, rows.Err()
}

// Len reports the number of cached trials.
func (c *Cache) Len() (int, error) {
	var n int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM trials`).Scan(&n)
	return n, err
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
