package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/middleware"
)

// Money is a decimal amount rendered on the wire as a string with exactly
// two fractional digits ("19.75", "0.00"). It accepts either a JSON string
// or a JSON number on input.
type Money decimal.Decimal

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(decimal.Decimal(m).StringFixed(2))
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

// Decimal returns m as a decimal.Decimal.
func (m Money) Decimal() decimal.Decimal { return decimal.Decimal(m) }

// ---- trips -----------------------------------------------------------------

// TripRequest is the body of POST /api/trips and PUT /api/trips/{id}.
type TripRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	StartDate   *openapi_types.Date `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate"`
	Destination string              `json:"destination"`
	Budget      *Money              `json:"budget"`
	Status      *string             `json:"status"`
}

// TripResponse is the wire form of a trip. ItineraryCount and TotalExpenses
// are only set by the summary route.
type TripResponse struct {
	ID             uuid.UUID          `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	StartDate      openapi_types.Date `json:"startDate"`
	EndDate        openapi_types.Date `json:"endDate"`
	Destination    string             `json:"destination"`
	Budget         *Money             `json:"budget,omitempty"`
	Status         string             `json:"status"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
	ItineraryCount *int               `json:"itineraryCount,omitempty"`
	TotalExpenses  *Money             `json:"totalExpenses,omitempty"`
}

// toInput converts the request body into a domain.TripInput.
// Returns a domain.ErrValidation-wrapped error for missing dates or an
// unknown status; the remaining rules live in TripInput.Validate.
func (b TripRequest) toInput() (domain.TripInput, error) {
	if b.StartDate == nil {
		return domain.TripInput{}, validationErr("startDate is required")
	}
	if b.EndDate == nil {
		return domain.TripInput{}, validationErr("endDate is required")
	}
	in := domain.TripInput{
		Title:       b.Title,
		Description: b.Description,
		StartDate:   b.StartDate.Time,
		EndDate:     b.EndDate.Time,
		Destination: b.Destination,
	}
	if b.Budget != nil {
		d := b.Budget.Decimal()
		if err := domain.ValidateMoney("budget", d); err != nil {
			return domain.TripInput{}, err
		}
		in.Budget = &d
	}
	if b.Status != nil {
		st, err := domain.ParseTripStatus(*b.Status)
		if err != nil {
			return domain.TripInput{}, err
		}
		in.Status = &st
	}
	return in, nil
}

func tripToResponse(t domain.Trip) TripResponse {
	resp := TripResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		Destination: t.Destination,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Budget != nil {
		m := Money(*t.Budget)
		resp.Budget = &m
	}
	return resp
}

func summaryToResponse(s domain.TripSummary) TripResponse {
	resp := tripToResponse(s.Trip)
	count := s.ItineraryCount
	total := Money(s.TotalExpenses)
	resp.ItineraryCount = &count
	resp.TotalExpenses = &total
	return resp
}

// ---- itineraries -----------------------------------------------------------

// ItineraryRequest is the body of POST /api/trips/{id}/itineraries.
type ItineraryRequest struct {
	Day   *openapi_types.Date `json:"day"`
	Title string              `json:"title"`
	Notes string              `json:"notes"`
}

// ItineraryResponse is the wire form of an itinerary entry.
type ItineraryResponse struct {
	ID        uuid.UUID          `json:"id"`
	TripID    uuid.UUID          `json:"tripId"`
	Day       openapi_types.Date `json:"day"`
	Title     string             `json:"title"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

func itineraryToResponse(it domain.Itinerary) ItineraryResponse {
	return ItineraryResponse{
		ID:        it.ID,
		TripID:    it.TripID,
		Day:       openapi_types.Date{Time: it.Day},
		Title:     it.Title,
		Notes:     it.Notes,
		CreatedAt: it.CreatedAt,
	}
}

// ---- expenses --------------------------------------------------------------

// ExpenseRequest is the body of POST /api/trips/{id}/expenses.
type ExpenseRequest struct {
	Amount      *Money              `json:"amount"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	SpentOn     *openapi_types.Date `json:"spentOn"`
}

// ExpenseResponse is the wire form of an expense.
type ExpenseResponse struct {
	ID          uuid.UUID           `json:"id"`
	TripID      uuid.UUID           `json:"tripId"`
	Amount      Money               `json:"amount"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	SpentOn     *openapi_types.Date `json:"spentOn,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Pagination describes the page returned by a paged list endpoint.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ExpenseList is the body of GET /api/trips/{id}/expenses.
type ExpenseList struct {
	Data       []ExpenseResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

func expenseToResponse(e domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          e.ID,
		TripID:      e.TripID,
		Amount:      Money(e.Amount),
		Category:    e.Category,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
	if e.SpentOn != nil {
		resp.SpentOn = &openapi_types.Date{Time: *e.SpentOn}
	}
	return resp
}

// ---- request helpers -------------------------------------------------------

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}

// callerEmail returns the identity placed in the context by the identity
// middleware. Routes under /api are never reached without one.
func callerEmail(r *http.Request) string {
	email, _ := middleware.CallerEmail(r.Context())
	return email
}

// pathID binds the {id} path parameter the same way generated oapi-codegen
// wrappers do.
func pathID(r *http.Request) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return id, err
}

// decodeJSON reads the request body into v. The body must hold exactly one
// JSON value. On failure it writes the error response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(v)
	if err == nil {
		if _, extra := dec.Token(); !errors.Is(extra, io.EOF) {
			badRequest(w, "request body must contain a single JSON value")
			return false
		}
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeErrorBody(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
	case errors.Is(err, io.EOF):
		badRequest(w, "request body is required")
	default:
		badRequest(w, "invalid request body: "+err.Error())
	}
	return false
}
