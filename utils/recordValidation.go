package utils

import (
	"DentalSimple/models"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// SignUpInput is the registration form.
type SignUpInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	ClinicName string `json:"clinic_name"`
}

// SignInInput is the login form. Password is accepted but never checked.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateSignUp checks the registration form fields are present.
func ValidateSignUp(in SignUpInput) error {
	return missing(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.ClinicName, validation.Required),
	))
}

// ValidateSignIn checks the login form has an email.
func ValidateSignIn(in SignInInput) error {
	return missing(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
	))
}

// ValidatePatient checks the required patient fields.
func ValidatePatient(p models.Patient) error {
	return missing(validation.ValidateStruct(&p,
		validation.Field(&p.OwnerID, validation.Required),
		validation.Field(&p.Name, validation.By(notBlank)),
		validation.Field(&p.Phone, validation.By(notBlank)),
	))
}

// DateLayout is the stored calendar date format. Listings sort on the raw
// string, so dates must be zero padded.
const DateLayout = "2006-01-02"

// clockTime is a zero padded 24 hour HH:MM time.
var clockTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateVisit checks the required visit fields and the date format.
func ValidateVisit(v models.Visit) error {
	err := missing(validation.ValidateStruct(&v,
		validation.Field(&v.OwnerID, validation.Required),
		validation.Field(&v.PatientID, validation.Required),
		validation.Field(&v.Date, validation.By(notBlank)),
		validation.Field(&v.Treatment, validation.By(notBlank)),
	))
	if err != nil {
		return err
	}
	return invalid(validation.ValidateStruct(&v,
		validation.Field(&v.Date, validation.Date(DateLayout)),
	))
}

// ValidateAppointment checks the required appointment fields and that date
// and time are YYYY-MM-DD and HH:MM.
func ValidateAppointment(a models.Appointment) error {
	err := missing(validation.ValidateStruct(&a,
		validation.Field(&a.OwnerID, validation.Required),
		validation.Field(&a.PatientID, validation.By(notBlank)),
		validation.Field(&a.Date, validation.By(notBlank)),
		validation.Field(&a.Time, validation.By(notBlank)),
	))
	if err != nil {
		return err
	}
	return invalid(validation.ValidateStruct(&a,
		validation.Field(&a.Date, validation.Date(DateLayout)),
		validation.Field(&a.Time, validation.Match(clockTime).Error("must be HH:MM")),
	))
}

// ValidatePatientPatch rejects a patch that blanks a required field.
func ValidatePatientPatch(p models.PatientPatch) error {
	return missing(validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.By(notBlankIfSet)),
		validation.Field(&p.Phone, validation.By(notBlankIfSet)),
	))
}

func notBlankIfSet(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	return notBlank(*s)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
}

func missing(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrValidationMissing, err)
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
