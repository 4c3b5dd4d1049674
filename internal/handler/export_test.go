package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/handler"
)

// exportRowFixture returns a fully-populated domain.ExportRow for testing.
func exportRowFixture() domain.ExportRow {
	return domain.ExportRow{
		TripID:         uuid.New(),
		Title:          "Japan",
		Destination:    "Tokyo",
		StartDate:      "2025-04-01",
		EndDate:        "2025-04-14",
		Status:         "PLANNING",
		Budget:         "3000.00",
		ItineraryCount: 2,
		TotalExpenses:  decimal.RequireFromString("19.75"),
	}
}

func exportSvc(rows []domain.ExportRow) *mockTripServicer {
	return &mockTripServicer{
		export: func(context.Context, string) ([]domain.ExportRow, error) { return rows, nil },
	}
}

// ---- JSON ------------------------------------------------------------------

func TestExportTrips_DefaultJSON_EmptyResult(t *testing.T) {
	rec := do(t, newHTTPHandler(exportSvc([]domain.ExportRow{}), nil, nil), http.MethodGet, "/api/trips/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestExportTrips_JSON_Row(t *testing.T) {
	row := exportRowFixture()

	rec := do(t, newHTTPHandler(exportSvc([]domain.ExportRow{row}), nil, nil), http.MethodGet, "/api/trips/export?format=json", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, row.TripID, rows[0].TripID)
	assert.Equal(t, 2, rows[0].ItineraryCount)
	require.NotNil(t, rows[0].Budget)
	assert.Equal(t, "3000.00", *rows[0].Budget)
	assert.Equal(t, "19.75", rows[0].TotalExpenses.Decimal().StringFixed(2))
}

func TestExportTrips_JSON_OmitsEmptyBudget(t *testing.T) {
	row := exportRowFixture()
	row.Budget = ""

	rec := do(t, newHTTPHandler(exportSvc([]domain.ExportRow{row}), nil, nil), http.MethodGet, "/api/trips/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var raw []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	require.Len(t, raw, 1)
	assert.NotContains(t, raw[0], "budget")
}

// ---- CSV -------------------------------------------------------------------

func TestExportTrips_CSV(t *testing.T) {
	row := exportRowFixture()

	rec := do(t, newHTTPHandler(exportSvc([]domain.ExportRow{row}), nil, nil), http.MethodGet, "/api/trips/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one data row")
	assert.Equal(t, "trip_id", records[0][0])
	assert.Equal(t, []string{
		row.TripID.String(), "Japan", "Tokyo", "2025-04-01", "2025-04-14",
		"PLANNING", "3000.00", "2", "19.75",
	}, records[1])
}

func TestExportTrips_CSV_HeaderOnlyWhenEmpty(t *testing.T) {
	rec := do(t, newHTTPHandler(exportSvc(nil), nil, nil), http.MethodGet, "/api/trips/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExportTrips_400_UnknownFormat(t *testing.T) {
	rec := do(t, newHTTPHandler(&mockTripServicer{}, nil, nil), http.MethodGet, "/api/trips/export?format=xml", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportTrips_404_UnknownUser(t *testing.T) {
	svc := &mockTripServicer{
		export: func(context.Context, string) ([]domain.ExportRow, error) { return nil, domain.ErrNotFound },
	}

	rec := do(t, newHTTPHandler(svc, nil, nil), http.MethodGet, "/api/trips/export", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
