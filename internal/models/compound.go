// ABOUTME: Compound and CompoundDose models for dose tracking.
// ABOUTME: A compound decays per half-life; doses form a per-date ledger.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"fitlog/internal/dosesim"
)

// Compound is a tracked substance with single-exponential decay.
type Compound struct {
	ID           uuid.UUID    `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	HalfLifeDays float64      `json:"half_life" yaml:"half_life"`
	StartDate    dosesim.Date `json:"start_date" yaml:"start_date"`
	CreatedAt    time.Time    `json:"created_at" yaml:"created_at"`

	// Doses is populated when fetching a compound with its ledger.
	Doses []CompoundDose `json:"doses,omitempty" yaml:"doses,omitempty"`
}

// NewCompound creates a Compound with generated UUID and current timestamp.
func NewCompound(name string, halfLifeDays float64, startDate dosesim.Date) *Compound {
	return &Compound{
		ID:           uuid.New(),
		Name:         name,
		HalfLifeDays: halfLifeDays,
		StartDate:    startDate,
		CreatedAt:    time.Now(),
	}
}

// Validate enforces the invariants the decay calculator assumes but does
// not check itself: a positive half-life and a usable start date. Every
// write path (CLI form, HTTP handler, MCP tool) calls this before the
// compound is persisted.
func (c *Compound) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("compound name is required")
	}
	if c.HalfLifeDays <= 0 {
		return fmt.Errorf("half-life must be positive, got %g", c.HalfLifeDays)
	}
	if c.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	return nil
}

// CompoundDose is one ledger entry: the amount administered on a date.
// The store keeps at most one row per (compound, date); writes overwrite.
type CompoundDose struct {
	ID         uuid.UUID    `json:"id" yaml:"id"`
	CompoundID uuid.UUID    `json:"compound_id" yaml:"compound_id"`
	DoseDate   dosesim.Date `json:"dose_date" yaml:"dose_date"`
	DoseAmount float64      `json:"dose_amount" yaml:"dose_amount"`
	CreatedAt  time.Time    `json:"created_at" yaml:"created_at"`
}

// NewCompoundDose creates a ledger entry with generated UUID and timestamp.
func NewCompoundDose(compoundID uuid.UUID, date dosesim.Date, amount float64) *CompoundDose {
	return &CompoundDose{
		ID:         uuid.New(),
		CompoundID: compoundID,
		DoseDate:   date,
		DoseAmount: amount,
		CreatedAt:  time.Now(),
	}
}

// SimDoses converts ledger entries into calculator input pairs.
func SimDoses(doses []*CompoundDose) []dosesim.Dose {
	out := make([]dosesim.Dose, 0, len(doses))
	for _, d := range doses {
		out = append(out, dosesim.Dose{Date: d.DoseDate, Amount: d.DoseAmount})
	}
	return out
}
