// ABOUTME: Repository interface for fitness and compound data storage.
// ABOUTME: Defines contract for compound, dose ledger, and entry operations.
package storage

import (
	"github.com/google/uuid"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
)

// Repository defines the storage interface for fitlog data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Compound operations
	CreateCompound(c *models.Compound) error
	GetCompound(idOrPrefix string) (*models.Compound, error)
	ListCompounds(limit int) ([]*models.Compound, error)
	UpdateCompound(c *models.Compound) error
	DeleteCompound(idOrPrefix string) error

	// Dose ledger operations. UpsertDose is the sole mutation path:
	// a write for an existing (compound, date) pair overwrites the
	// amount, it never accumulates. Zeroing a dose writes amount 0.
	UpsertDose(compoundID uuid.UUID, date dosesim.Date, amount float64) (*models.CompoundDose, error)
	ListDoses(compoundID uuid.UUID) ([]*models.CompoundDose, error)

	// Exercise entry operations
	CreateEntry(e *models.ExerciseEntry) error
	GetEntry(idOrPrefix string) (*models.ExerciseEntry, error)
	ListEntries(filter EntryFilter) ([]*models.ExerciseEntry, error)
	UpdateEntry(e *models.ExerciseEntry) error
	DeleteEntry(idOrPrefix string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// EntryFilter narrows ListEntries results. Zero values mean "no filter".
type EntryFilter struct {
	Date     *dosesim.Date
	From     *dosesim.Date
	To       *dosesim.Date
	Category *models.Category
	Limit    int
}
