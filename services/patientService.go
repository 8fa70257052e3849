package services

import (
	"DentalSimple/models"
	"DentalSimple/repositories"
	"DentalSimple/utils"
	"context"
	"strings"
	"time"
)

type PatientService struct {
	store repositories.RecordStore
	now   func() time.Time
}

func NewPatientService(store repositories.RecordStore) *PatientService {
	return &PatientService{store: store, now: time.Now}
}

// Create assigns the id, owner and creation time, then stores the patient.
func (s *PatientService) Create(ctx context.Context, ownerID string, patient *models.Patient) error {
	now := s.now()
	patient.ID = utils.NewRecordID("pat", now)
	patient.OwnerID = ownerID
	patient.CreatedAt = now.UTC()
	patient.Name = strings.TrimSpace(patient.Name)
	patient.Phone = strings.TrimSpace(patient.Phone)
	patient.Email = optional(patient.Email)
	patient.BirthDate = optional(patient.BirthDate)
	patient.Address = optional(patient.Address)
	patient.Allergies = optional(patient.Allergies)

	if err := utils.ValidatePatient(*patient); err != nil {
		return err
	}
	return s.store.InsertPatient(ctx, patient)
}

func (s *PatientService) List(ctx context.Context, ownerID string, order repositories.PatientOrder) ([]models.Patient, error) {
	return s.store.ListPatients(ctx, ownerID, order)
}

// GetRecord returns the patient with its visit history, newest visit first.
func (s *PatientService) GetRecord(ctx context.Context, ownerID, id string) (*models.PatientRecord, error) {
	patient, err := s.store.GetPatient(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	visits, err := s.store.ListVisits(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &models.PatientRecord{Patient: *patient, Visits: visits}, nil
}

// Update trims every set field before applying it, so a blank optional field
// clears it the same way Create leaves it unset.
func (s *PatientService) Update(ctx context.Context, ownerID, id string, patch models.PatientPatch) (*models.Patient, error) {
	patch.Name = trimmed(patch.Name)
	patch.Phone = trimmed(patch.Phone)
	patch.Email = trimmed(patch.Email)
	patch.BirthDate = trimmed(patch.BirthDate)
	patch.Address = trimmed(patch.Address)
	patch.Allergies = trimmed(patch.Allergies)

	if err := utils.ValidatePatientPatch(patch); err != nil {
		return nil, err
	}
	return s.store.UpdatePatient(ctx, ownerID, id, patch)
}

// optional maps a blank optional field to nil.
func optional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// trimmed keeps nil as "unchanged" and trims a set value.
func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
