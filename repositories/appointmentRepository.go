package repositories

import (
	"DentalSimple/models"
	"DentalSimple/utils"
	"context"
)

func (r *SQLStore) InsertAppointment(ctx context.Context, appointment *models.Appointment) error {
	return utils.Persistence("create appointment", r.db.WithContext(ctx).Create(appointment).Error)
}

func (r *SQLStore) ListAppointments(ctx context.Context, ownerID string, filter AppointmentFilter) ([]models.Appointment, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("appointment.*, COALESCE(patient.name, '') AS patient_name").
		Joins("LEFT JOIN patient ON patient.id = appointment.patient_id AND patient.owner_id = appointment.owner_id").
		Where("appointment.owner_id = ?", ownerID)
	if filter.From != "" {
		q = q.Where("appointment.date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("appointment.date <= ?", filter.To)
	}

	appointments := []models.Appointment{}
	err := q.Order("appointment.time ASC").
		Order("appointment.date ASC").
		Order("appointment.id ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, utils.Persistence("list appointments", err)
	}
	return appointments, nil
}
