package services

import (
	"DentalSimple/models"
	"DentalSimple/repositories"
	"DentalSimple/utils"
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type AppointmentService struct {
	store    repositories.RecordStore
	notifier utils.BookingNotifier
	now      func() time.Time
}

func NewAppointmentService(store repositories.RecordStore, notifier utils.BookingNotifier) *AppointmentService {
	if notifier == nil {
		notifier = utils.NopNotifier{}
	}
	return &AppointmentService{store: store, notifier: notifier, now: time.Now}
}

// Book stores an appointment for one of the owner's patients and sends the
// booking notice to the clinic. A failed notice is logged only.
func (s *AppointmentService) Book(ctx context.Context, owner models.User, appointment *models.Appointment) error {
	appointment.ID = utils.NewRecordID("apt", s.now())
	appointment.OwnerID = owner.ID
	appointment.Reason = optional(appointment.Reason)
	appointment.PatientName = ""

	if err := utils.ValidateAppointment(*appointment); err != nil {
		return err
	}
	patient, err := s.store.GetPatient(ctx, owner.ID, appointment.PatientID)
	if err != nil {
		return err
	}
	if err := s.store.InsertAppointment(ctx, appointment); err != nil {
		return err
	}
	appointment.PatientName = patient.Name

	if err := s.notifier.NotifyBooking(owner.Email, *appointment); err != nil {
		log.Warn().Err(err).Str("appointment_id", appointment.ID).Msg("failed to send booking notice")
	}
	return nil
}

// List returns the owner's appointments within the closed date range.
func (s *AppointmentService) List(ctx context.Context, ownerID string, filter repositories.AppointmentFilter) ([]models.Appointment, error) {
	return s.store.ListAppointments(ctx, ownerID, filter)
}
