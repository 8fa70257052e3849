package repositories

import (
	"DentalSimple/models"
	"DentalSimple/utils"
	"context"
)

func (r *SQLStore) InsertVisit(ctx context.Context, visit *models.Visit) error {
	return utils.Persistence("create visit", r.db.WithContext(ctx).Create(visit).Error)
}

func (r *SQLStore) ListVisits(ctx context.Context, ownerID, patientID string) ([]models.Visit, error) {
	visits := []models.Visit{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND patient_id = ?", ownerID, patientID).
		Order("date DESC").
		Order("id DESC").
		Find(&visits).Error
	if err != nil {
		return nil, utils.Persistence("list visits", err)
	}
	return visits, nil
}
