package services

import (
	"DentalSimple/models"
	"DentalSimple/repositories"
	"DentalSimple/utils"
	"context"
	"time"
)

const DateLayout = utils.DateLayout

type DashboardService struct {
	store repositories.RecordStore
	now   func() time.Time
}

func NewDashboardService(store repositories.RecordStore) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// Summary counts the owner's patients and lists today's appointments by time.
func (s *DashboardService) Summary(ctx context.Context, ownerID string) (*models.DashboardSummary, error) {
	today := s.now().Format(DateLayout)

	count, err := s.store.CountPatients(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	appointments, err := s.store.ListAppointments(ctx, ownerID, repositories.AppointmentFilter{From: today, To: today})
	if err != nil {
		return nil, err
	}
	return &models.DashboardSummary{
		Today:        today,
		PatientCount: count,
		Appointments: appointments,
	}, nil
}
