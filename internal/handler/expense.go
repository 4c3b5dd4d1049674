package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-planner/internal/domain"
)

// CreateExpense handles POST /api/trips/{id}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}
	var body ExpenseRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Amount == nil {
		badRequest(w, "amount is required")
		return
	}
	if err := domain.ValidateMoney("amount", body.Amount.Decimal()); err != nil {
		badRequest(w, validationMessage(err))
		return
	}

	e := domain.Expense{
		Amount:      body.Amount.Decimal(),
		Category:    body.Category,
		Description: body.Description,
	}
	if body.SpentOn != nil {
		d := body.SpentOn.Time
		e.SpentOn = &d
	}

	created, err := s.expenses.Add(r.Context(), tripID, e, callerEmail(r))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, expenseToResponse(created))
}

// ListExpenses handles GET /api/trips/{id}/expenses.
// Supports ?page= and ?limit= query parameters (see domain.DefaultPageLimit and domain.MaxPageLimit).
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		badRequest(w, "invalid page parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		badRequest(w, "invalid limit parameter")
		return
	}
	params := domain.NewPaginationParams(page, limit)

	expenses, total, err := s.expenses.ListPaged(r.Context(), tripID, params, callerEmail(r))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}

	data := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		data[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, ExpenseList{
		Data: data,
		Pagination: Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      int(total),
			TotalPages: params.TotalPages(total),
		},
	})
}
