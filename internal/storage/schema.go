// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for compounds, compound_doses, and exercise_entries.
package storage

// initSchema creates or updates the database schema.
// The UNIQUE constraint on (compound_id, dose_date) is load-bearing:
// the dose ledger holds at most one amount per compound per day, and
// the decay calculator assumes that invariant holds.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS compounds (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		half_life REAL NOT NULL,
		start_date TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS compound_doses (
		id TEXT PRIMARY KEY,
		compound_id TEXT NOT NULL,
		dose_date TEXT NOT NULL,
		dose_amount REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (compound_id) REFERENCES compounds(id) ON DELETE CASCADE,
		UNIQUE (compound_id, dose_date)
	);

	CREATE TABLE IF NOT EXISTS exercise_entries (
		id TEXT PRIMARY KEY,
		exercise_date TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('lifting', 'cardio')),
		sub_exercise TEXT NOT NULL,
		notes_quantitative TEXT,
		notes_qualitative TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_compounds_created ON compounds(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_doses_compound_date ON compound_doses(compound_id, dose_date);
	CREATE INDEX IF NOT EXISTS idx_entries_date ON exercise_entries(exercise_date);
	CREATE INDEX IF NOT EXISTS idx_entries_category_date ON exercise_entries(category, exercise_date);
	`

	_, err := d.db.Exec(schema)
	return err
}
