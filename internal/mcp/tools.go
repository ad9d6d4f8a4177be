// ABOUTME: MCP tool implementations for compounds, doses, and exercises.
// ABOUTME: set_dose is the upsert path; get_dose_series runs the decay sim.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
	"fitlog/internal/storage"
)

func (s *Server) registerTools() {
	// add_compound
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_compound",
		Description: "Create a compound with a half-life and tracking start date",
	}, s.handleAddCompound)

	// list_compounds
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_compounds",
		Description: "List tracked compounds",
	}, s.handleListCompounds)

	// delete_compound
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_compound",
		Description: "Delete a compound and its dose history by ID or ID prefix",
	}, s.handleDeleteCompound)

	// set_dose
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_dose",
		Description: "Set the dose amount for a compound on a date (overwrites any existing amount; use 0 to clear)",
	}, s.handleSetDose)

	// list_doses
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_doses",
		Description: "List the recorded doses for a compound in date order",
	}, s.handleListDoses)

	// get_dose_series
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dose_series",
		Description: "Compute the daily active-dose decay series for a compound",
	}, s.handleGetDoseSeries)

	// log_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_exercise",
		Description: "Log an exercise entry (lifting or cardio) for a date",
	}, s.handleLogExercise)

	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List exercise entries, optionally filtered by date or category",
	}, s.handleListExercises)
}

// Tool input/output types

type addCompoundInput struct {
	Name      string  `json:"name" jsonschema:"Compound name"`
	HalfLife  float64 `json:"half_life" jsonschema:"Half-life in days (fractional allowed)"`
	StartDate string  `json:"start_date" jsonschema:"Tracking start date (YYYY-MM-DD)"`
}

type compoundOutput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	HalfLife float64 `json:"half_life"`
	Message  string  `json:"message"`
}

type listCompoundsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type compoundIDInput struct {
	ID string `json:"id" jsonschema:"Compound ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type setDoseInput struct {
	CompoundID string  `json:"compound_id" jsonschema:"Compound ID or prefix"`
	DoseDate   string  `json:"dose_date" jsonschema:"Dose date (YYYY-MM-DD)"`
	Amount     float64 `json:"amount" jsonschema:"Dose amount in mg; 0 clears the day"`
}

type getDoseSeriesInput struct {
	CompoundID string `json:"compound_id" jsonschema:"Compound ID or prefix"`
	Days       int    `json:"days,omitempty" jsonschema:"Forecast days past today (default 30)"`
}

type logExerciseInput struct {
	ExerciseDate string `json:"exercise_date" jsonschema:"Date of the exercise (YYYY-MM-DD)"`
	Category     string `json:"category" jsonschema:"Category (lifting or cardio)"`
	SubExercise  string `json:"sub_exercise" jsonschema:"Specific exercise (squat, running, etc.)"`
	Quantitative string `json:"quantitative,omitempty" jsonschema:"Sets/reps/weight or distance/time notes"`
	Qualitative  string `json:"qualitative,omitempty" jsonschema:"Free-form notes on how it felt"`
}

type listExercisesInput struct {
	Date     string `json:"date,omitempty" jsonschema:"Filter to a single date (YYYY-MM-DD)"`
	Category string `json:"category,omitempty" jsonschema:"Filter by category (lifting or cardio)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

// Tool handlers

func (s *Server) handleAddCompound(ctx context.Context, req *mcp.CallToolRequest, input addCompoundInput) (*mcp.CallToolResult, compoundOutput, error) {
	start, err := dosesim.ParseDate(input.StartDate)
	if err != nil {
		return nil, compoundOutput{}, fmt.Errorf("invalid start date: %w", err)
	}

	c := models.NewCompound(input.Name, input.HalfLife, start)
	if err := c.Validate(); err != nil {
		return nil, compoundOutput{}, err
	}

	if err := s.repo.CreateCompound(c); err != nil {
		return nil, compoundOutput{}, fmt.Errorf("failed to create compound: %w", err)
	}

	return nil, compoundOutput{
		ID:       c.ID.String()[:8],
		Name:     c.Name,
		HalfLife: c.HalfLifeDays,
		Message:  fmt.Sprintf("Added %s (half-life %.2g days, ID: %s)", c.Name, c.HalfLifeDays, c.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListCompounds(ctx context.Context, req *mcp.CallToolRequest, input listCompoundsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	compounds, err := s.repo.ListCompounds(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list compounds: %w", err)
	}

	if len(compounds) == 0 {
		return nil, map[string]interface{}{"message": "No compounds found."}, nil
	}

	return nil, compounds, nil
}

func (s *Server) handleDeleteCompound(ctx context.Context, req *mcp.CallToolRequest, input compoundIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteCompound(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete compound: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted compound: %s", input.ID),
	}, nil
}

func (s *Server) handleSetDose(ctx context.Context, req *mcp.CallToolRequest, input setDoseInput) (*mcp.CallToolResult, simpleOutput, error) {
	if input.Amount < 0 {
		return nil, simpleOutput{}, fmt.Errorf("dose amount must be non-negative")
	}

	date, err := dosesim.ParseDate(input.DoseDate)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid dose date: %w", err)
	}

	c, err := s.repo.GetCompound(input.CompoundID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("compound not found: %s", input.CompoundID)
	}

	if _, err := s.repo.UpsertDose(c.ID, date, input.Amount); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save dose: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Set %s dose on %s to %.2f mg", c.Name, date, input.Amount),
	}, nil
}

func (s *Server) handleListDoses(ctx context.Context, req *mcp.CallToolRequest, input compoundIDInput) (*mcp.CallToolResult, any, error) {
	c, err := s.repo.GetCompound(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("compound not found: %s", input.ID)
	}

	doses, err := s.repo.ListDoses(c.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list doses: %w", err)
	}

	if len(doses) == 0 {
		return nil, map[string]interface{}{"message": "No doses recorded."}, nil
	}

	return nil, doses, nil
}

func (s *Server) handleGetDoseSeries(ctx context.Context, req *mcp.CallToolRequest, input getDoseSeriesInput) (*mcp.CallToolResult, any, error) {
	if input.Days <= 0 {
		input.Days = 30
	}

	c, err := s.repo.GetCompound(input.CompoundID)
	if err != nil {
		return nil, nil, fmt.Errorf("compound not found: %s", input.CompoundID)
	}

	doses, err := s.repo.ListDoses(c.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list doses: %w", err)
	}

	end := dosesim.Today().AddDays(input.Days)
	rows := dosesim.ComputeSeries(c.StartDate, c.HalfLifeDays, models.SimDoses(doses), end)

	return nil, map[string]interface{}{
		"compound":  c.Name,
		"half_life": c.HalfLifeDays,
		"end_date":  end.String(),
		"rows":      rows,
	}, nil
}

func (s *Server) handleLogExercise(ctx context.Context, req *mcp.CallToolRequest, input logExerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !models.IsValidCategory(input.Category) {
		return nil, simpleOutput{}, fmt.Errorf("unknown category: %s", input.Category)
	}

	date, err := dosesim.ParseDate(input.ExerciseDate)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid exercise date: %w", err)
	}

	e := models.NewExerciseEntry(date, models.Category(input.Category), input.SubExercise)
	if input.Quantitative != "" {
		e.WithQuantitative(input.Quantitative)
	}
	if input.Qualitative != "" {
		e.WithQualitative(input.Qualitative)
	}

	if err := s.repo.CreateEntry(e); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to create entry: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged %s/%s on %s (ID: %s)", e.Category, e.SubExercise, e.ExerciseDate, e.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var filter storage.EntryFilter
	filter.Limit = input.Limit

	if input.Date != "" {
		d, err := dosesim.ParseDate(input.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date: %w", err)
		}
		filter.Date = &d
	}
	if input.Category != "" {
		if !models.IsValidCategory(input.Category) {
			return nil, nil, fmt.Errorf("unknown category: %s", input.Category)
		}
		c := models.Category(input.Category)
		filter.Category = &c
	}

	entries, err := s.repo.ListEntries(filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "No entries found."}, nil
	}

	return nil, entries, nil
}
