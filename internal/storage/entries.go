// ABOUTME: Exercise entry CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for the workout calendar.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
)

// CreateEntry stores a new exercise entry in the database.
func (d *DB) CreateEntry(e *models.ExerciseEntry) error {
	query := `
		INSERT INTO exercise_entries
			(id, exercise_date, category, sub_exercise, notes_quantitative, notes_qualitative, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		e.ID.String(),
		e.ExerciseDate.String(),
		string(e.Category),
		e.SubExercise,
		e.NotesQuantitative,
		e.NotesQualitative,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// GetEntry retrieves an exercise entry by ID or ID prefix.
func (d *DB) GetEntry(idOrPrefix string) (*models.ExerciseEntry, error) {
	id, err := d.resolveID("exercise_entries", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, exercise_date, category, sub_exercise, notes_quantitative, notes_qualitative, created_at
		FROM exercise_entries
		WHERE id = ?
	`
	e, err := scanEntry(d.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return e, nil
}

// ListEntries retrieves exercise entries matching the filter, ordered by
// exercise date then creation time descending.
func (d *DB) ListEntries(filter EntryFilter) ([]*models.ExerciseEntry, error) {
	query := `
		SELECT id, exercise_date, category, sub_exercise, notes_quantitative, notes_qualitative, created_at
		FROM exercise_entries
	`
	var conds []string
	var args []interface{}

	if filter.Date != nil {
		conds = append(conds, "exercise_date = ?")
		args = append(args, filter.Date.String())
	}
	if filter.From != nil {
		conds = append(conds, "exercise_date >= ?")
		args = append(args, filter.From.String())
	}
	if filter.To != nil {
		conds = append(conds, "exercise_date <= ?")
		args = append(args, filter.To.String())
	}
	if filter.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, string(*filter.Category))
	}

	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY exercise_date DESC, created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.ExerciseEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateEntry overwrites an entry's editable fields.
func (d *DB) UpdateEntry(e *models.ExerciseEntry) error {
	query := `
		UPDATE exercise_entries
		SET exercise_date = ?, category = ?, sub_exercise = ?,
		    notes_quantitative = ?, notes_qualitative = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query,
		e.ExerciseDate.String(),
		string(e.Category),
		e.SubExercise,
		e.NotesQuantitative,
		e.NotesQualitative,
		e.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", e.ID)
	}
	return nil
}

// DeleteEntry removes an exercise entry by ID or prefix.
func (d *DB) DeleteEntry(idOrPrefix string) error {
	id, err := d.resolveID("exercise_entries", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM exercise_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

func scanEntry(s scanner) (*models.ExerciseEntry, error) {
	var e models.ExerciseEntry
	var idStr, exerciseDate, category, createdAt string
	var quant, qual sql.NullString

	err := s.Scan(&idStr, &exerciseDate, &category, &e.SubExercise, &quant, &qual, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.ExerciseDate, _ = dosesim.ParseDate(exerciseDate)
	e.Category = models.Category(category)
	e.CreatedAt = parseStoredTime(createdAt)
	if quant.Valid {
		e.NotesQuantitative = &quant.String
	}
	if qual.Valid {
		e.NotesQualitative = &qual.String
	}
	return &e, nil
}
