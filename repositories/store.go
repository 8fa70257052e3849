package repositories

import (
	"DentalSimple/models"
	"context"
)

// PatientOrder selects the ordering of patient listings.
type PatientOrder int

const (
	// OrderByNewest lists patients by creation time, most recent first.
	OrderByNewest PatientOrder = iota
	// OrderByName lists patients alphabetically, as the booking form's picker does.
	OrderByName
)

func (o PatientOrder) String() string {
	if o == OrderByName {
		return "name"
	}
	return "newest"
}

// AppointmentFilter is a closed date range. An empty bound is unbounded.
type AppointmentFilter struct {
	From string
	To   string
}

// Contains reports whether date falls within the range.
func (f AppointmentFilter) Contains(date string) bool {
	if f.From != "" && date < f.From {
		return false
	}
	if f.To != "" && date > f.To {
		return false
	}
	return true
}

// RecordStore holds the patients, visits and appointments of every owner.
// All reads and writes are scoped by owner id.
type RecordStore interface {
	InsertPatient(ctx context.Context, patient *models.Patient) error
	UpdatePatient(ctx context.Context, ownerID, id string, patch models.PatientPatch) (*models.Patient, error)
	GetPatient(ctx context.Context, ownerID, id string) (*models.Patient, error)
	ListPatients(ctx context.Context, ownerID string, order PatientOrder) ([]models.Patient, error)
	CountPatients(ctx context.Context, ownerID string) (int64, error)

	InsertVisit(ctx context.Context, visit *models.Visit) error
	ListVisits(ctx context.Context, ownerID, patientID string) ([]models.Visit, error)

	InsertAppointment(ctx context.Context, appointment *models.Appointment) error
	ListAppointments(ctx context.Context, ownerID string, filter AppointmentFilter) ([]models.Appointment, error)
}

// UserStore is the registered-user set, unique by email.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionStore persists the single active session token. Load returns ""
// when no session is stored.
type SessionStore interface {
	LoadSession(ctx context.Context) (string, error)
	SaveSession(ctx context.Context, token string) error
	ClearSession(ctx context.Context) error
}

// Backend is a complete persistence backend.
type Backend interface {
	RecordStore
	UserStore
	SessionStore
}
