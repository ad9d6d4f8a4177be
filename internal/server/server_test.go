// ABOUTME: HTTP API tests over httptest with a real SQLite store.
// ABOUTME: Covers the auth gate, compound CRUD, dose upserts, and series math.
package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitlog/internal/server"
	"fitlog/internal/storage"
)

const testPassword = "correct horse"

type apiClient struct {
	t      *testing.T
	srv    *httptest.Server
	cookie *http.Cookie
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "fitlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := server.New(db, testPassword, nil)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return &apiClient{t: t, srv: srv}
}

func (c *apiClient) login(password string) *http.Response {
	c.t.Helper()
	resp := c.do(http.MethodPost, "/api/auth", map[string]string{"password": password})
	for _, cookie := range resp.Cookies() {
		if cookie.Name == server.AuthCookieName {
			c.cookie = cookie
		}
	}
	return resp
}

func (c *apiClient) do(method, path string, body interface{}) *http.Response {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, c.srv.URL+path, &buf)
	require.NoError(c.t, err)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestAuthGate(t *testing.T) {
	c := newAPIClient(t)

	// No cookie: rejected
	resp := c.do(http.MethodGet, "/api/compounds", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Wrong password: rejected
	resp = c.login("wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, c.cookie)

	// Correct password: cookie issued, API accessible
	resp = c.login(testPassword)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, c.cookie)
	assert.True(t, c.cookie.HttpOnly)

	resp = c.do(http.MethodGet, "/api/compounds", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthEndpointUnauthenticated(t *testing.T) {
	c := newAPIClient(t)
	resp := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCompoundCRUD(t *testing.T) {
	c := newAPIClient(t)
	c.login(testPassword)

	// Create
	resp := c.do(http.MethodPost, "/api/compounds", map[string]interface{}{
		"name":       "Compound A",
		"half_life":  1.5,
		"start_date": "2020-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		HalfLife float64 `json:"half_life"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "Compound A", created.Name)
	assert.Equal(t, 1.5, created.HalfLife)

	// Non-positive half-life rejected at the form boundary
	resp = c.do(http.MethodPost, "/api/compounds", map[string]interface{}{
		"name":       "Bad",
		"half_life":  -1,
		"start_date": "2020-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Update
	resp = c.do(http.MethodPut, "/api/compounds/"+created.ID, map[string]interface{}{
		"half_life": 2.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		HalfLife float64 `json:"half_life"`
		Name     string  `json:"name"`
	}
	decode(t, resp, &updated)
	assert.Equal(t, 2.0, updated.HalfLife)
	assert.Equal(t, "Compound A", updated.Name, "absent fields keep stored values")

	// Delete
	resp = c.do(http.MethodDelete, "/api/compounds/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = c.do(http.MethodGet, "/api/compounds/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDoseUpsertAndSeries(t *testing.T) {
	c := newAPIClient(t)
	c.login(testPassword)

	resp := c.do(http.MethodPost, "/api/compounds", map[string]interface{}{
		"name":       "Compound A",
		"half_life":  1.0,
		"start_date": "2020-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var compound struct {
		ID string `json:"id"`
	}
	decode(t, resp, &compound)

	dosesPath := fmt.Sprintf("/api/compounds/%s/doses", compound.ID)

	// Write then overwrite the same date
	resp = c.do(http.MethodPost, dosesPath, map[string]interface{}{
		"dose_date": "2020-01-01", "dose_amount": 30,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = c.do(http.MethodPost, dosesPath, map[string]interface{}{
		"dose_date": "2020-01-01", "dose_amount": 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Negative amounts rejected at the input boundary
	resp = c.do(http.MethodPost, dosesPath, map[string]interface{}{
		"dose_date": "2020-01-02", "dose_amount": -5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Ledger has one row holding the replacement amount
	resp = c.do(http.MethodGet, dosesPath, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doses []struct {
		DoseDate   string  `json:"dose_date"`
		DoseAmount float64 `json:"dose_amount"`
	}
	decode(t, resp, &doses)
	require.Len(t, doses, 1)
	assert.Equal(t, 100.0, doses[0].DoseAmount, "upsert overwrites, never accumulates")

	// Series reflects the overwritten amount and the halving curve
	resp = c.do(http.MethodGet, fmt.Sprintf("/api/compounds/%s/series?days=30", compound.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"active_dose"`, "series rows use snake_case keys like the rest of the API")
	var series struct {
		Rows []struct {
			Date           string  `json:"date"`
			Index          int     `json:"index"`
			ActiveDose     float64 `json:"active_dose"`
			CalculatedNext float64 `json:"calculated_next"`
			AddedDose      float64 `json:"added_dose"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(raw, &series))
	require.NotEmpty(t, series.Rows)

	first := series.Rows[0]
	assert.Equal(t, "2020-01-01", first.Date)
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, 100.0, first.ActiveDose)
	assert.Equal(t, 50.0, first.CalculatedNext)

	second := series.Rows[1]
	assert.Equal(t, 50.0, second.ActiveDose)
	assert.Equal(t, 0.0, second.AddedDose)

	// Bad days parameter
	resp = c.do(http.MethodGet, fmt.Sprintf("/api/compounds/%s/series?days=nope", compound.ID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEntryEndpoints(t *testing.T) {
	c := newAPIClient(t)
	c.login(testPassword)

	resp := c.do(http.MethodPost, "/api/entries", map[string]interface{}{
		"exercise_date": "2026-08-01",
		"category":      "lifting",
		"sub_exercise":  "squat",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry struct {
		ID string `json:"id"`
	}
	decode(t, resp, &entry)

	// Invalid category rejected
	resp = c.do(http.MethodPost, "/api/entries", map[string]interface{}{
		"exercise_date": "2026-08-01",
		"category":      "swimming",
		"sub_exercise":  "laps",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// List filtered by date
	resp = c.do(http.MethodGet, "/api/entries?date=2026-08-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []map[string]interface{}
	decode(t, resp, &entries)
	assert.Len(t, entries, 1)

	// Update
	resp = c.do(http.MethodPut, "/api/entries/"+entry.ID, map[string]interface{}{
		"sub_exercise": "front squat",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete
	resp = c.do(http.MethodDelete, "/api/entries/"+entry.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = c.do(http.MethodDelete, "/api/entries/"+entry.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	c := newAPIClient(t)
	c.login(testPassword)

	resp := c.do(http.MethodDelete, "/api/auth", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The logout response clears the cookie client-side; simulate by
	// dropping it and confirming the gate closes again.
	c.cookie = nil
	resp = c.do(http.MethodGet, "/api/compounds", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
