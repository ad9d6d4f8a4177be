// ABOUTME: Tests for export and import round-trips.
// ABOUTME: Verifies JSON/YAML serialization and re-import upsert behavior.
package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"fitlog/internal/models"
)

func seedExportData(t *testing.T, db *DB) *models.Compound {
	t.Helper()

	c := models.NewCompound("Compound A", 1.5, mustDate(t, "2026-01-01"))
	if err := db.CreateCompound(c); err != nil {
		t.Fatalf("CreateCompound failed: %v", err)
	}
	if _, err := db.UpsertDose(c.ID, mustDate(t, "2026-01-01"), 100); err != nil {
		t.Fatalf("UpsertDose failed: %v", err)
	}
	if _, err := db.UpsertDose(c.ID, mustDate(t, "2026-01-04"), 50); err != nil {
		t.Fatalf("UpsertDose failed: %v", err)
	}

	e := models.NewExerciseEntry(mustDate(t, "2026-01-02"), models.CategoryLifting, "deadlift")
	if err := db.CreateEntry(e); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	return c
}

func TestGetAllData(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	seedExportData(t, db)

	data, err := db.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}

	if data.Tool != "fitlog" || data.Version != "1.0" {
		t.Errorf("header mismatch: %+v", data)
	}
	if len(data.Compounds) != 1 {
		t.Fatalf("compounds = %d, want 1", len(data.Compounds))
	}
	if len(data.Compounds[0].Doses) != 2 {
		t.Errorf("doses = %d, want 2", len(data.Compounds[0].Doses))
	}
	if len(data.Entries) != 1 {
		t.Errorf("entries = %d, want 1", len(data.Entries))
	}
}

func TestExportImportJSONRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	c := seedExportData(t, db)

	raw, err := db.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if !strings.Contains(string(raw), "2026-01-04") {
		t.Error("expected dose date in JSON export")
	}

	parsed, err := ParseImport(raw)
	if err != nil {
		t.Fatalf("ParseImport failed: %v", err)
	}

	// Import into a fresh database
	db2, err := Open(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db2.Close()

	if err := db2.ImportData(parsed); err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}

	got, err := db2.GetCompound(c.ID.String())
	if err != nil {
		t.Fatalf("GetCompound after import failed: %v", err)
	}
	if got.Name != "Compound A" || got.HalfLifeDays != 1.5 {
		t.Errorf("imported compound mismatch: %+v", got)
	}

	doses, err := db2.ListDoses(c.ID)
	if err != nil {
		t.Fatalf("ListDoses after import failed: %v", err)
	}
	if len(doses) != 2 {
		t.Errorf("imported doses = %d, want 2", len(doses))
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	seedExportData(t, db)

	raw, err := db.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, "tool: fitlog") {
		t.Error("expected tool header in YAML export")
	}
	if !strings.Contains(out, "half_life: 1.5") {
		t.Error("expected half_life in YAML export")
	}

	parsed, err := ParseImport(raw)
	if err != nil {
		t.Fatalf("ParseImport(yaml) failed: %v", err)
	}
	if len(parsed.Compounds) != 1 {
		t.Errorf("parsed compounds = %d, want 1", len(parsed.Compounds))
	}
}
