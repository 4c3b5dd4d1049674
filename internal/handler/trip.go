package handler

import (
	"net/http"
)

const (
	tripNotFound = "trip not found"
	userNotFound = "user not found"
)

// ListTrips handles GET /api/trips.
// Returns the caller's trips, newest start date first. An empty list is [].
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), callerEmail(r))
	if err != nil {
		s.writeServiceError(w, r, err, userNotFound)
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.Get(r.Context(), id, callerEmail(r))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	in, err := body.toInput()
	if err != nil {
		s.writeServiceError(w, r, err, userNotFound)
		return
	}

	created, err := s.trips.Create(r.Context(), in, callerEmail(r))
	if err != nil {
		s.writeServiceError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// UpdateTrip handles PUT /api/trips/{id}.
// Every writable field is replaced; status is kept when the body omits it.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}
	var body TripRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	in, err := body.toInput()
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}

	updated, err := s.trips.Update(r.Context(), id, in, callerEmail(r))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /api/trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), id, callerEmail(r)); err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTripSummary handles GET /api/trips/{id}/summary.
func (s *Server) GetTripSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	summary, err := s.trips.Summary(r.Context(), id, callerEmail(r))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(summary))
}
