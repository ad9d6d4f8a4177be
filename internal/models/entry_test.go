// ABOUTME: Tests for ExerciseEntry model and Category enum.
// ABOUTME: Validates category checking and builder-style setters.
package models

import (
	"testing"

	"fitlog/internal/dosesim"
)

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"lifting", true},
		{"cardio", true},
		{"swimming", false},
		{"", false},
		{"LIFTING", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidCategory(tt.input); got != tt.want {
				t.Errorf("IsValidCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewExerciseEntry(t *testing.T) {
	date := dosesim.MustParseDate("2026-08-28")
	e := NewExerciseEntry(date, CategoryLifting, "squat").
		WithQuantitative("5x5 @ 100kg").
		WithQualitative("felt strong")

	if e.ExerciseDate != date {
		t.Errorf("ExerciseDate = %s, want %s", e.ExerciseDate, date)
	}
	if e.Category != CategoryLifting {
		t.Errorf("Category = %s, want lifting", e.Category)
	}
	if e.SubExercise != "squat" {
		t.Errorf("SubExercise = %s, want squat", e.SubExercise)
	}
	if e.NotesQuantitative == nil || *e.NotesQuantitative != "5x5 @ 100kg" {
		t.Errorf("NotesQuantitative = %v", e.NotesQuantitative)
	}
	if e.NotesQualitative == nil || *e.NotesQualitative != "felt strong" {
		t.Errorf("NotesQualitative = %v", e.NotesQualitative)
	}
}
