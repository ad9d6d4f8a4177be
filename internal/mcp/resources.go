// ABOUTME: MCP resource implementations for the compound and exercise store.
// ABOUTME: Provides fitlog://compounds and fitlog://activity resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
	"fitlog/internal/storage"
)

func (s *Server) registerResources() {
	// fitlog://compounds - every compound with its current active dose
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitlog://compounds",
		Name:        "Tracked Compounds",
		Description: "All compounds with their current active dose levels",
		MIMEType:    "application/json",
	}, s.handleCompoundsResource)

	// fitlog://activity - recent exercise entries
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitlog://activity",
		Name:        "Recent Activity",
		Description: "The last 20 exercise entries",
		MIMEType:    "application/json",
	}, s.handleActivityResource)
}

// Resource handlers

func (s *Server) handleCompoundsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	compounds, err := s.repo.ListCompounds(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list compounds: %w", err)
	}

	today := dosesim.Today()
	summaries := make([]map[string]interface{}, 0, len(compounds))
	for _, c := range compounds {
		doses, err := s.repo.ListDoses(c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list doses: %w", err)
		}

		// Active dose today is the last row of the series through today.
		var active float64
		rows := dosesim.ComputeSeries(c.StartDate, c.HalfLifeDays, models.SimDoses(doses), today)
		if len(rows) > 0 {
			active = rows[len(rows)-1].ActiveDose
		}

		summaries = append(summaries, map[string]interface{}{
			"id":          c.ID.String(),
			"name":        c.Name,
			"half_life":   c.HalfLifeDays,
			"start_date":  c.StartDate.String(),
			"dose_count":  len(doses),
			"active_dose": active,
		})
	}

	result := map[string]interface{}{
		"date":      today.String(),
		"compounds": summaries,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fitlog://compounds",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleActivityResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.repo.ListEntries(storage.EntryFilter{Limit: 20})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	result := map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fitlog://activity",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
