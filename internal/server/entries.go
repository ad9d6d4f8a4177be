// ABOUTME: HTTP handlers for exercise entries (the workout calendar).
// ABOUTME: Supports date, range, and category filters on list.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
	"fitlog/internal/storage"
)

type entryInput struct {
	ExerciseDate      string  `json:"exercise_date"`
	Category          string  `json:"category"`
	SubExercise       string  `json:"sub_exercise"`
	NotesQuantitative *string `json:"notes_quantitative"`
	NotesQualitative  *string `json:"notes_qualitative"`
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	var filter storage.EntryFilter

	q := r.URL.Query()
	if v := q.Get("date"); v != "" {
		d, err := dosesim.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		filter.Date = &d
	}
	if v := q.Get("from"); v != "" {
		d, err := dosesim.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date")
			return
		}
		filter.From = &d
	}
	if v := q.Get("to"); v != "" {
		d, err := dosesim.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date")
			return
		}
		filter.To = &d
	}
	if v := q.Get("category"); v != "" {
		if !models.IsValidCategory(v) {
			writeError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		c := models.Category(v)
		filter.Category = &c
	}

	entries, err := s.repo.ListEntries(filter)
	if err != nil {
		s.log.Error("list entries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch entries")
		return
	}
	if entries == nil {
		entries = []*models.ExerciseEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var in entryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.ExerciseDate == "" || in.Category == "" || in.SubExercise == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !models.IsValidCategory(in.Category) {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}

	date, err := dosesim.ParseDate(in.ExerciseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid exercise date")
		return
	}

	e := models.NewExerciseEntry(date, models.Category(in.Category), in.SubExercise)
	if in.NotesQuantitative != nil {
		e.NotesQuantitative = in.NotesQuantitative
	}
	if in.NotesQualitative != nil {
		e.NotesQualitative = in.NotesQualitative
	}

	if err := s.repo.CreateEntry(e); err != nil {
		s.log.Error("create entry", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create entry")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.repo.GetEntry(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	var in entryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if in.ExerciseDate != "" {
		date, err := dosesim.ParseDate(in.ExerciseDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid exercise date")
			return
		}
		e.ExerciseDate = date
	}
	if in.Category != "" {
		if !models.IsValidCategory(in.Category) {
			writeError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		e.Category = models.Category(in.Category)
	}
	if in.SubExercise != "" {
		e.SubExercise = in.SubExercise
	}
	if in.NotesQuantitative != nil {
		e.NotesQuantitative = in.NotesQuantitative
	}
	if in.NotesQualitative != nil {
		e.NotesQualitative = in.NotesQualitative
	}

	if err := s.repo.UpdateEntry(e); err != nil {
		s.log.Error("update entry", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteEntry(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
