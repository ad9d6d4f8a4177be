// ABOUTME: HTTP handlers for compounds, the dose ledger, and the series view.
// ABOUTME: POST /doses is the upsert path; /series recomputes from scratch.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
)

type compoundInput struct {
	Name      string   `json:"name"`
	HalfLife  *float64 `json:"half_life"`
	StartDate string   `json:"start_date"`
}

func (s *Server) handleListCompounds(w http.ResponseWriter, r *http.Request) {
	compounds, err := s.repo.ListCompounds(0)
	if err != nil {
		s.log.Error("list compounds", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch compounds")
		return
	}
	if compounds == nil {
		compounds = []*models.Compound{}
	}
	writeJSON(w, http.StatusOK, compounds)
}

func (s *Server) handleCreateCompound(w http.ResponseWriter, r *http.Request) {
	var in compoundInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == "" || in.HalfLife == nil || in.StartDate == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	start, err := dosesim.ParseDate(in.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date")
		return
	}

	c := models.NewCompound(in.Name, *in.HalfLife, start)
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.CreateCompound(c); err != nil {
		s.log.Error("create compound", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create compound")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleGetCompound(w http.ResponseWriter, r *http.Request) {
	c, err := s.repo.GetCompound(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Compound not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCompound(w http.ResponseWriter, r *http.Request) {
	c, err := s.repo.GetCompound(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Compound not found")
		return
	}

	var in compoundInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Partial update: absent fields keep their stored values.
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.HalfLife != nil {
		c.HalfLifeDays = *in.HalfLife
	}
	if in.StartDate != "" {
		start, err := dosesim.ParseDate(in.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start date")
			return
		}
		c.StartDate = start
	}

	if err := c.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.UpdateCompound(c); err != nil {
		s.log.Error("update compound", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update compound")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCompound(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteCompound(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "Compound not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type doseInput struct {
	DoseDate   string   `json:"dose_date"`
	DoseAmount *float64 `json:"dose_amount"`
}

func (s *Server) handleListDoses(w http.ResponseWriter, r *http.Request) {
	c, err := s.repo.GetCompound(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Compound not found")
		return
	}

	doses, err := s.repo.ListDoses(c.ID)
	if err != nil {
		s.log.Error("list doses", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch doses")
		return
	}
	if doses == nil {
		doses = []*models.CompoundDose{}
	}
	writeJSON(w, http.StatusOK, doses)
}

func (s *Server) handleUpsertDose(w http.ResponseWriter, r *http.Request) {
	c, err := s.repo.GetCompound(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Compound not found")
		return
	}

	var in doseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.DoseDate == "" || in.DoseAmount == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if *in.DoseAmount < 0 {
		writeError(w, http.StatusBadRequest, "Dose amount must be non-negative")
		return
	}

	date, err := dosesim.ParseDate(in.DoseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dose date")
		return
	}

	saved, err := s.repo.UpsertDose(c.ID, date, *in.DoseAmount)
	if err != nil {
		s.log.Error("upsert dose", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save dose")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// handleSeries computes the decay series for a compound from its start
// date through today plus the requested forecast horizon. The whole
// window is recomputed from the ledger on every request.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	c, err := s.repo.GetCompound(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Compound not found")
		return
	}

	days := 30
	if q := r.URL.Query().Get("days"); q != "" {
		days, err = strconv.Atoi(q)
		if err != nil || days < 0 {
			writeError(w, http.StatusBadRequest, "Invalid days parameter")
			return
		}
	}

	doses, err := s.repo.ListDoses(c.ID)
	if err != nil {
		s.log.Error("list doses", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch doses")
		return
	}

	end := dosesim.Today().AddDays(days)
	rows := dosesim.ComputeSeries(c.StartDate, c.HalfLifeDays, models.SimDoses(doses), end)
	if rows == nil {
		rows = []dosesim.Row{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"compound": c,
		"end_date": end,
		"rows":     rows,
	})
}
