// ABOUTME: Mirrors compounds, doses, and entries into Charm KV.
// ABOUTME: Uses type-prefixed keys; the SQLite store stays authoritative.
package charm

import (
	"fmt"
	"sort"

	"fitlog/internal/models"
)

// PutCompound stores a compound record in the KV store. The embedded
// ledger is stripped; doses live under their own keys.
func (c *Client) PutCompound(m *models.Compound) error {
	record := *m
	record.Doses = nil
	key := CompoundPrefix + m.ID.String()
	data, err := marshalJSON(&record)
	if err != nil {
		return fmt.Errorf("marshal compound: %w", err)
	}
	return c.set(key, data)
}

// PutDose stores a dose record in the KV store. Keys embed the compound
// ID and the dose date so an upsert on the same day overwrites in KV
// exactly as it does in SQLite.
func (c *Client) PutDose(d *models.CompoundDose) error {
	key := DosePrefix + d.CompoundID.String() + ":" + d.DoseDate.String()
	data, err := marshalJSON(d)
	if err != nil {
		return fmt.Errorf("marshal dose: %w", err)
	}
	return c.set(key, data)
}

// PutEntry stores an exercise entry record in the KV store.
func (c *Client) PutEntry(e *models.ExerciseEntry) error {
	key := EntryPrefix + e.ID.String()
	data, err := marshalJSON(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return c.set(key, data)
}

// DeleteCompound removes a compound record and its doses from the KV store.
func (c *Client) DeleteCompound(m *models.Compound) error {
	doses, err := c.ListDoses()
	if err != nil {
		return err
	}
	for _, d := range doses {
		if d.CompoundID == m.ID {
			key := DosePrefix + d.CompoundID.String() + ":" + d.DoseDate.String()
			if err := c.delete(key); err != nil {
				return fmt.Errorf("delete dose: %w", err)
			}
		}
	}
	return c.delete(CompoundPrefix + m.ID.String())
}

// ListCompounds retrieves all mirrored compounds sorted by name.
func (c *Client) ListCompounds() ([]*models.Compound, error) {
	allData, err := c.listByPrefix(CompoundPrefix)
	if err != nil {
		return nil, fmt.Errorf("list compounds: %w", err)
	}

	var compounds []*models.Compound
	for _, data := range allData {
		m, err := unmarshalJSON[models.Compound](data)
		if err != nil {
			continue // Skip invalid entries
		}
		compounds = append(compounds, m)
	}

	sort.Slice(compounds, func(i, j int) bool {
		return compounds[i].Name < compounds[j].Name
	})

	return compounds, nil
}

// ListDoses retrieves all mirrored doses sorted by date.
func (c *Client) ListDoses() ([]*models.CompoundDose, error) {
	allData, err := c.listByPrefix(DosePrefix)
	if err != nil {
		return nil, fmt.Errorf("list doses: %w", err)
	}

	var doses []*models.CompoundDose
	for _, data := range allData {
		d, err := unmarshalJSON[models.CompoundDose](data)
		if err != nil {
			continue
		}
		doses = append(doses, d)
	}

	sort.Slice(doses, func(i, j int) bool {
		return doses[i].DoseDate.Before(doses[j].DoseDate)
	})

	return doses, nil
}

// ListEntries retrieves all mirrored exercise entries, most recent first.
func (c *Client) ListEntries() ([]*models.ExerciseEntry, error) {
	allData, err := c.listByPrefix(EntryPrefix)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	var entries []*models.ExerciseEntry
	for _, data := range allData {
		e, err := unmarshalJSON[models.ExerciseEntry](data)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[j].ExerciseDate.Before(entries[i].ExerciseDate)
	})

	return entries, nil
}

// Counts reports how many records of each type are mirrored.
func (c *Client) Counts() (compounds, doses, entries int, err error) {
	if compounds, err = c.countByPrefix(CompoundPrefix); err != nil {
		return 0, 0, 0, err
	}
	if doses, err = c.countByPrefix(DosePrefix); err != nil {
		return 0, 0, 0, err
	}
	if entries, err = c.countByPrefix(EntryPrefix); err != nil {
		return 0, 0, 0, err
	}
	return compounds, doses, entries, nil
}

// PushSnapshot mirrors the full local dataset into KV. Writes are
// batched without per-write sync, then synced once at the end.
func (c *Client) PushSnapshot(compounds []*models.Compound, entries []*models.ExerciseEntry) error {
	c.SetAutoSync(false)
	defer c.SetAutoSync(true)

	for _, m := range compounds {
		if err := c.PutCompound(m); err != nil {
			return err
		}
		for i := range m.Doses {
			if err := c.PutDose(&m.Doses[i]); err != nil {
				return err
			}
		}
	}
	for _, e := range entries {
		if err := c.PutEntry(e); err != nil {
			return err
		}
	}

	return c.Sync()
}
