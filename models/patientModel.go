package models

import (
	"time"
)

// Patient model
type Patient struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	OwnerID   string    `gorm:"column:owner_id;not null;index" json:"owner_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Phone     string    `gorm:"column:phone;not null" json:"phone"`
	Email     *string   `gorm:"column:email" json:"email"`
	BirthDate *string   `gorm:"column:birth_date" json:"birth_date"`
	Address   *string   `gorm:"column:address" json:"address"`
	Allergies *string   `gorm:"column:allergies" json:"allergies"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index" json:"created_at"`
}

func (Patient) TableName() string {
	return "patient"
}

// PatientPatch carries an in-place edit of a patient. Nil fields are left unchanged;
// an empty optional field clears it.
type PatientPatch struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	BirthDate *string `json:"birth_date"`
	Address   *string `json:"address"`
	Allergies *string `json:"allergies"`
}

// Apply copies the set fields of the patch onto p.
func (patch PatientPatch) Apply(p *Patient) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	applyOptional(&p.Email, patch.Email)
	applyOptional(&p.BirthDate, patch.BirthDate)
	applyOptional(&p.Address, patch.Address)
	applyOptional(&p.Allergies, patch.Allergies)
}

func applyOptional(dst **string, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		*dst = nil
		return
	}
	v := *value
	*dst = &v
}

// Visit model
type Visit struct {
	ID        string   `gorm:"primaryKey;column:id" json:"id"`
	OwnerID   string   `gorm:"column:owner_id;not null;index" json:"owner_id"`
	PatientID string   `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Date      string   `gorm:"column:date;not null;index" json:"date"`
	Treatment string   `gorm:"column:treatment;not null" json:"treatment"`
	Notes     *string  `gorm:"column:notes" json:"notes"`
	Cost      *float64 `gorm:"column:cost" json:"cost"`
}

func (Visit) TableName() string {
	return "visit"
}

// Appointment model. PatientName is filled by listings and never written.
type Appointment struct {
	ID          string  `gorm:"primaryKey;column:id" json:"id"`
	OwnerID     string  `gorm:"column:owner_id;not null;index" json:"owner_id"`
	PatientID   string  `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Date        string  `gorm:"column:date;not null;index" json:"date"`
	Time        string  `gorm:"column:time;not null" json:"time"`
	Reason      *string `gorm:"column:reason" json:"reason"`
	PatientName string  `gorm:"->;-:migration;column:patient_name" json:"patient_name"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// PatientRecord is the patient detail view: the patient and its visit history.
type PatientRecord struct {
	Patient Patient `json:"patient"`
	Visits  []Visit `json:"visits"`
}
