// ABOUTME: Compound CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for compounds.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
)

// CreateCompound stores a new compound in the database.
func (d *DB) CreateCompound(c *models.Compound) error {
	query := `
		INSERT INTO compounds (id, name, half_life, start_date, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		c.ID.String(),
		c.Name,
		c.HalfLifeDays,
		c.StartDate.String(),
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create compound: %w", err)
	}
	return nil
}

// GetCompound retrieves a compound by ID or ID prefix.
func (d *DB) GetCompound(idOrPrefix string) (*models.Compound, error) {
	id, err := d.resolveID("compounds", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, half_life, start_date, created_at
		FROM compounds
		WHERE id = ?
	`
	return scanCompound(d.db.QueryRow(query, id))
}

// ListCompounds retrieves compounds sorted by creation time descending.
func (d *DB) ListCompounds(limit int) ([]*models.Compound, error) {
	query := `
		SELECT id, name, half_life, start_date, created_at
		FROM compounds
		ORDER BY created_at DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compounds: %w", err)
	}
	defer rows.Close()

	var compounds []*models.Compound
	for rows.Next() {
		c, err := scanCompoundRow(rows)
		if err != nil {
			return nil, err
		}
		compounds = append(compounds, c)
	}
	return compounds, rows.Err()
}

// UpdateCompound overwrites a compound's editable fields.
func (d *DB) UpdateCompound(c *models.Compound) error {
	query := `
		UPDATE compounds
		SET name = ?, half_life = ?, start_date = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query, c.Name, c.HalfLifeDays, c.StartDate.String(), c.ID.String())
	if err != nil {
		return fmt.Errorf("update compound: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update compound: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", c.ID)
	}
	return nil
}

// DeleteCompound removes a compound and its dose ledger (cascade delete).
func (d *DB) DeleteCompound(idOrPrefix string) error {
	id, err := d.resolveID("compounds", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete compound: %w", err)
	}

	// CASCADE is enabled, so deleting the compound deletes its doses
	result, err := d.db.Exec("DELETE FROM compounds WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete compound: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete compound: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

// resolveID finds the full ID from a prefix in the given table.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	// Search by prefix. Table names are compile-time constants here.
	query := fmt.Sprintf(`SELECT id FROM %s WHERE id LIKE ? || '%%'`, table)
	rows, err := d.db.Query(query, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	return matches[0], nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCompoundFields(s scanner) (*models.Compound, error) {
	var c models.Compound
	var idStr, startDate, createdAt string

	if err := s.Scan(&idStr, &c.Name, &c.HalfLifeDays, &startDate, &createdAt); err != nil {
		return nil, err
	}

	c.ID, _ = uuid.Parse(idStr)
	c.StartDate, _ = dosesim.ParseDate(startDate)
	c.CreatedAt = parseStoredTime(createdAt)
	return &c, nil
}

func scanCompound(row *sql.Row) (*models.Compound, error) {
	c, err := scanCompoundFields(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan compound: %w", err)
	}
	return c, nil
}

func scanCompoundRow(rows *sql.Rows) (*models.Compound, error) {
	c, err := scanCompoundFields(rows)
	if err != nil {
		return nil, fmt.Errorf("scan compound: %w", err)
	}
	return c, nil
}

// parseStoredTime handles both RFC3339 (written by this code) and the
// SQLite CURRENT_TIMESTAMP format (written by column defaults).
func parseStoredTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t
}
