// ABOUTME: Export and import functionality for fitlog data.
// ABOUTME: Supports JSON and YAML export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"fitlog/internal/models"
)

// ExportData represents the full export format for fitlog data.
type ExportData struct {
	Version    string                  `json:"version" yaml:"version"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool       string                  `json:"tool" yaml:"tool"`
	Compounds  []*models.Compound      `json:"compounds" yaml:"compounds"`
	Entries    []*models.ExerciseEntry `json:"entries" yaml:"entries"`
}

// GetAllData retrieves all data for export. Each compound carries its
// full dose ledger.
func (d *DB) GetAllData() (*ExportData, error) {
	compounds, err := d.ListCompounds(0)
	if err != nil {
		return nil, fmt.Errorf("list compounds: %w", err)
	}

	for _, c := range compounds {
		doses, err := d.ListDoses(c.ID)
		if err != nil {
			return nil, fmt.Errorf("list doses: %w", err)
		}
		for _, dose := range doses {
			c.Doses = append(c.Doses, *dose)
		}
	}

	entries, err := d.ListEntries(EntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "fitlog",
		Compounds:  compounds,
		Entries:    entries,
	}, nil
}

// ImportData imports data from an export file. Dose rows go through the
// upsert path, so re-importing over existing data overwrites rather
// than duplicating ledger rows.
func (d *DB) ImportData(data *ExportData) error {
	for _, c := range data.Compounds {
		if err := d.CreateCompound(c); err != nil {
			return fmt.Errorf("import compound: %w", err)
		}
		for _, dose := range c.Doses {
			if _, err := d.UpsertDose(c.ID, dose.DoseDate, dose.DoseAmount); err != nil {
				return fmt.Errorf("import dose: %w", err)
			}
		}
	}

	for _, e := range data.Entries {
		if err := d.CreateEntry(e); err != nil {
			return fmt.Errorf("import entry: %w", err)
		}
	}

	return nil
}

// JSON renders the export payload as indented JSON.
func (e *ExportData) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// YAML renders the export payload as YAML.
func (e *ExportData) YAML() ([]byte, error) {
	return yaml.Marshal(e)
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return data.JSON()
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return data.YAML()
}

// ParseImport decodes an export payload, accepting JSON or YAML.
func ParseImport(raw []byte) (*ExportData, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err == nil {
		return &data, nil
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse import: %w", err)
	}
	return &data, nil
}
