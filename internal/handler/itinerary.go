package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/internal/domain"
)

// CreateItinerary handles POST /api/trips/{id}/itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}
	var body ItineraryRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Day == nil {
		badRequest(w, "day is required")
		return
	}

	it := domain.Itinerary{Day: body.Day.Time, Title: body.Title, Notes: body.Notes}
	created, err := s.itineraries.Add(r.Context(), tripID, it, callerEmail(r))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, itineraryToResponse(created))
}

// ListItineraries handles GET /api/trips/{id}/itineraries.
// Entries are ordered by day.
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	items, err := s.itineraries.List(r.Context(), tripID, callerEmail(r))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}

	data := make([]ItineraryResponse, len(items))
	for i, it := range items {
		data[i] = itineraryToResponse(it)
	}
	writeJSON(w, http.StatusOK, data)
}
