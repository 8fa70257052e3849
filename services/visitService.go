package services

import (
	"DentalSimple/models"
	"DentalSimple/repositories"
	"DentalSimple/utils"
	"context"
	"time"
)

type VisitService struct {
	store repositories.RecordStore
	now   func() time.Time
}

func NewVisitService(store repositories.RecordStore) *VisitService {
	return &VisitService{store: store, now: time.Now}
}

// Create appends a visit to the history of one of the owner's patients.
func (s *VisitService) Create(ctx context.Context, ownerID, patientID string, visit *models.Visit) error {
	visit.ID = utils.NewRecordID("vis", s.now())
	visit.OwnerID = ownerID
	visit.PatientID = patientID
	visit.Notes = optional(visit.Notes)

	if err := utils.ValidateVisit(*visit); err != nil {
		return err
	}
	if _, err := s.store.GetPatient(ctx, ownerID, patientID); err != nil {
		return err
	}
	return s.store.InsertVisit(ctx, visit)
}

func (s *VisitService) List(ctx context.Context, ownerID, patientID string) ([]models.Visit, error) {
	if _, err := s.store.GetPatient(ctx, ownerID, patientID); err != nil {
		return nil, err
	}
	return s.store.ListVisits(ctx, ownerID, patientID)
}
