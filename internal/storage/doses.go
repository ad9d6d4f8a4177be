// ABOUTME: Dose ledger operations for SQLite storage.
// ABOUTME: Upsert-only writes keep one amount per compound per date.
package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
)

// UpsertDose writes an amount for a (compound, date) pair. If the date
// already has an amount, it is replaced — never added to. This is the
// only mutation path into the ledger; zeroing a dose writes amount 0.
func (d *DB) UpsertDose(compoundID uuid.UUID, date dosesim.Date, amount float64) (*models.CompoundDose, error) {
	dose := models.NewCompoundDose(compoundID, date, amount)

	query := `
		INSERT INTO compound_doses (id, compound_id, dose_date, dose_amount, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (compound_id, dose_date)
		DO UPDATE SET dose_amount = excluded.dose_amount
	`
	_, err := d.db.Exec(query,
		dose.ID.String(),
		dose.CompoundID.String(),
		dose.DoseDate.String(),
		dose.DoseAmount,
		dose.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert dose: %w", err)
	}

	// Re-read so the caller sees the stored row (original id and
	// created_at survive a conflict update).
	return d.getDose(compoundID, date)
}

// ListDoses retrieves the full ledger for a compound in ascending date
// order, ready to hand to the decay calculator.
func (d *DB) ListDoses(compoundID uuid.UUID) ([]*models.CompoundDose, error) {
	query := `
		SELECT id, compound_id, dose_date, dose_amount, created_at
		FROM compound_doses
		WHERE compound_id = ?
		ORDER BY dose_date ASC
	`
	rows, err := d.db.Query(query, compoundID.String())
	if err != nil {
		return nil, fmt.Errorf("list doses: %w", err)
	}
	defer rows.Close()

	var doses []*models.CompoundDose
	for rows.Next() {
		dose, err := scanDose(rows)
		if err != nil {
			return nil, err
		}
		doses = append(doses, dose)
	}
	return doses, rows.Err()
}

func (d *DB) getDose(compoundID uuid.UUID, date dosesim.Date) (*models.CompoundDose, error) {
	query := `
		SELECT id, compound_id, dose_date, dose_amount, created_at
		FROM compound_doses
		WHERE compound_id = ? AND dose_date = ?
	`
	row := d.db.QueryRow(query, compoundID.String(), date.String())

	var dose models.CompoundDose
	var idStr, cidStr, doseDate, createdAt string
	if err := row.Scan(&idStr, &cidStr, &doseDate, &dose.DoseAmount, &createdAt); err != nil {
		return nil, fmt.Errorf("get dose: %w", err)
	}

	dose.ID, _ = uuid.Parse(idStr)
	dose.CompoundID, _ = uuid.Parse(cidStr)
	dose.DoseDate, _ = dosesim.ParseDate(doseDate)
	dose.CreatedAt = parseStoredTime(createdAt)
	return &dose, nil
}

func scanDose(s scanner) (*models.CompoundDose, error) {
	var dose models.CompoundDose
	var idStr, cidStr, doseDate, createdAt string

	if err := s.Scan(&idStr, &cidStr, &doseDate, &dose.DoseAmount, &createdAt); err != nil {
		return nil, fmt.Errorf("scan dose: %w", err)
	}

	dose.ID, _ = uuid.Parse(idStr)
	dose.CompoundID, _ = uuid.Parse(cidStr)
	dose.DoseDate, _ = dosesim.ParseDate(doseDate)
	dose.CreatedAt = parseStoredTime(createdAt)
	return &dose, nil
}
