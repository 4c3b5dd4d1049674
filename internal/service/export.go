package service

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

const dateLayout = "2006-01-02"

// Export returns one ExportRow per trip the caller owns, in list order,
// with itinerary count and expense total filled in.
func (s *TripService) Export(ctx context.Context, callerEmail string) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		user, err := r.Users.GetByEmail(ctx, callerEmail)
		if err != nil {
			return err
		}
		trips, err := r.Trips.ListByOwner(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, t := range trips {
			sum, err := summarize(ctx, r, t)
			if err != nil {
				return err
			}
			rows = append(rows, toExportRow(sum))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Export: %w", err)
	}
	return rows, nil
}

func toExportRow(s domain.TripSummary) domain.ExportRow {
	row := domain.ExportRow{
		TripID:         s.ID,
		Title:          s.Title,
		Destination:    s.Destination,
		StartDate:      s.StartDate.Format(dateLayout),
		EndDate:        s.EndDate.Format(dateLayout),
		Status:         string(s.Status),
		ItineraryCount: s.ItineraryCount,
		TotalExpenses:  s.TotalExpenses,
	}
	if s.Budget != nil {
		row.Budget = s.Budget.StringFixed(2)
	}
	return row
}
