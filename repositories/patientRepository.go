package repositories

import (
	"DentalSimple/models"
	"DentalSimple/utils"
	"context"
	"errors"

	"gorm.io/gorm"
)

var patientColumns = []string{"name", "phone", "email", "birth_date", "address", "allergies"}

func (r *SQLStore) InsertPatient(ctx context.Context, patient *models.Patient) error {
	return utils.Persistence("create patient", r.db.WithContext(ctx).Create(patient).Error)
}

func (r *SQLStore) GetPatient(ctx context.Context, ownerID, id string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("patient", id)
		}
		return nil, utils.Persistence("get patient", err)
	}
	return &patient, nil
}

func (r *SQLStore) UpdatePatient(ctx context.Context, ownerID, id string, patch models.PatientPatch) (*models.Patient, error) {
	patient, err := r.GetPatient(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(patient)

	err = r.db.WithContext(ctx).
		Model(patient).
		Where("owner_id = ?", ownerID).
		Select(patientColumns).
		Updates(patient).Error
	if err != nil {
		return nil, utils.Persistence("update patient", err)
	}
	return patient, nil
}

func (r *SQLStore) ListPatients(ctx context.Context, ownerID string, order PatientOrder) ([]models.Patient, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if order == OrderByName {
		q = q.Order("name ASC").Order("id ASC")
	} else {
		q = q.Order("created_at DESC").Order("id DESC")
	}

	patients := []models.Patient{}
	if err := q.Find(&patients).Error; err != nil {
		return nil, utils.Persistence("list patients", err)
	}
	return patients, nil
}

func (r *SQLStore) CountPatients(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("owner_id = ?", ownerID).Count(&count).Error
	if err != nil {
		return 0, utils.Persistence("count patients", err)
	}
	return count, nil
}
