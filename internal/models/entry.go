// ABOUTME: ExerciseEntry model and Category enum for the workout calendar.
// ABOUTME: Entries are date-keyed lifting/cardio log lines with free notes.
package models

import (
	"time"

	"github.com/google/uuid"

	"fitlog/internal/dosesim"
)

// Category classifies an exercise entry.
type Category string

const (
	CategoryLifting Category = "lifting"
	CategoryCardio  Category = "cardio"
)

// AllCategories returns all valid entry categories.
var AllCategories = []Category{CategoryLifting, CategoryCardio}

// IsValidCategory checks if a string is a valid entry category.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// ExerciseEntry is one logged exercise on a calendar day. Multiple
// entries per day are allowed, unlike the dose ledger.
type ExerciseEntry struct {
	ID                uuid.UUID    `json:"id" yaml:"id"`
	ExerciseDate      dosesim.Date `json:"exercise_date" yaml:"exercise_date"`
	Category          Category     `json:"category" yaml:"category"`
	SubExercise       string       `json:"sub_exercise" yaml:"sub_exercise"`
	NotesQuantitative *string      `json:"notes_quantitative,omitempty" yaml:"notes_quantitative,omitempty"`
	NotesQualitative  *string      `json:"notes_qualitative,omitempty" yaml:"notes_qualitative,omitempty"`
	CreatedAt         time.Time    `json:"created_at" yaml:"created_at"`
}

// NewExerciseEntry creates an entry with generated UUID and timestamp.
func NewExerciseEntry(date dosesim.Date, category Category, subExercise string) *ExerciseEntry {
	return &ExerciseEntry{
		ID:           uuid.New(),
		ExerciseDate: date,
		Category:     category,
		SubExercise:  subExercise,
		CreatedAt:    time.Now(),
	}
}

// WithQuantitative sets the quantitative notes (sets/reps/distance).
func (e *ExerciseEntry) WithQuantitative(notes string) *ExerciseEntry {
	e.NotesQuantitative = &notes
	return e
}

// WithQualitative sets the qualitative notes (how it felt).
func (e *ExerciseEntry) WithQualitative(notes string) *ExerciseEntry {
	e.NotesQualitative = &notes
	return e
}
