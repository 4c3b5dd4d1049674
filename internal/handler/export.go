package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "title", "destination", "start_date", "end_date",
	"status", "budget", "itinerary_count", "total_expenses",
}

// ExportRow is the JSON form of one exported trip.
type ExportRow struct {
	TripID         uuid.UUID `json:"tripId"`
	Title          string    `json:"title"`
	Destination    string    `json:"destination"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	Status         string    `json:"status"`
	Budget         *string   `json:"budget,omitempty"`
	ItineraryCount int       `json:"itineraryCount"`
	TotalExpenses  Money     `json:"totalExpenses"`
}

// ExportTrips handles GET /api/trips/export.
// It returns one row per trip the caller owns.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportTrips(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		badRequest(w, "invalid format parameter")
		return
	}
	wantCSV := false
	if format != nil {
		switch *format {
		case "csv":
			wantCSV = true
		case "json":
		default:
			badRequest(w, "format must be csv or json")
			return
		}
	}

	rows, err := s.trips.Export(r.Context(), callerEmail(r))
	if err != nil {
		s.writeServiceError(w, r, err, userNotFound)
		return
	}

	if wantCSV {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToJSONRow(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV streams rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	//nolint:errcheck // a failed write means the client went away
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()
}

// domainRowToJSONRow maps a domain.ExportRow to its JSON form.
// An empty budget becomes a nil pointer (omitted in JSON).
func domainRowToJSONRow(r domain.ExportRow) ExportRow {
	row := ExportRow{
		TripID:         r.TripID,
		Title:          r.Title,
		Destination:    r.Destination,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Status:         r.Status,
		ItineraryCount: r.ItineraryCount,
		TotalExpenses:  Money(r.TotalExpenses),
	}
	if r.Budget != "" {
		row.Budget = &r.Budget
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID.String(),
		r.Title,
		r.Destination,
		r.StartDate,
		r.EndDate,
		r.Status,
		r.Budget,
		strconv.Itoa(r.ItineraryCount),
		r.TotalExpenses.StringFixed(2),
	}
}
