package utils

import (
	"DentalSimple/config"
	"DentalSimple/models"
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestNewRecordIDFormat(t *testing.T) {
	now := time.UnixMilli(1710460800123)
	id := NewRecordID("pat", now)

	assert.Regexp(t, regexp.MustCompile(`^pat_1710460800123_[0-9a-z]{9}$`), id)
	assert.NotEqual(t, id, NewRecordID("pat", now))
}

func TestPersistenceErrorMatching(t *testing.T) {
	cause := errors.New("connection reset")
	err := Persistence("insert patient", cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert patient")
	assert.NoError(t, Persistence("noop", nil))
}

func TestNotFound(t *testing.T) {
	err := NotFound("patient", "pat_1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "pat_1")
}

func TestValidatePatient(t *testing.T) {
	assert.NoError(t, ValidatePatient(models.Patient{OwnerID: "u", Name: "Ana", Phone: "111"}))

	err := ValidatePatient(models.Patient{OwnerID: "u", Name: "  ", Phone: "111"})
	assert.ErrorIs(t, err, ErrValidationMissing)
	assert.Contains(t, err.Error(), "name")

	err = ValidatePatient(models.Patient{OwnerID: "u", Name: "Ana"})
	assert.ErrorIs(t, err, ErrValidationMissing)
	assert.Contains(t, err.Error(), "phone")
}

func TestValidatePatientPatch(t *testing.T) {
	blank := " "
	phone := "555-0101"
	empty := ""

	assert.NoError(t, ValidatePatientPatch(models.PatientPatch{}))
	assert.NoError(t, ValidatePatientPatch(models.PatientPatch{Phone: &phone, Allergies: &empty}))
	assert.ErrorIs(t, ValidatePatientPatch(models.PatientPatch{Name: &blank}), ErrValidationMissing)
	assert.ErrorIs(t, ValidatePatientPatch(models.PatientPatch{Phone: &empty}), ErrValidationMissing)
}

func TestValidateVisitAndAppointment(t *testing.T) {
	assert.NoError(t, ValidateVisit(models.Visit{OwnerID: "u", PatientID: "p", Date: "2024-03-15", Treatment: "Cleaning"}))
	assert.ErrorIs(t, ValidateVisit(models.Visit{OwnerID: "u", PatientID: "p", Date: "2024-03-15"}), ErrValidationMissing)

	assert.NoError(t, ValidateAppointment(models.Appointment{OwnerID: "u", PatientID: "p", Date: "2024-03-15", Time: "09:00"}))
	assert.ErrorIs(t, ValidateAppointment(models.Appointment{OwnerID: "u", Date: "2024-03-15", Time: "09:00"}), ErrValidationMissing)
}

func TestValidateAppointmentFormats(t *testing.T) {
	base := models.Appointment{OwnerID: "u", PatientID: "p", Date: "2024-03-15", Time: "09:30"}
	assert.NoError(t, ValidateAppointment(base))

	for _, bad := range []string{"9:30", "banana", "24:00", "09:60", "0930", "09:30:00"} {
		a := base
		a.Time = bad
		err := ValidateAppointment(a)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
		assert.NotErrorIs(t, err, ErrValidationMissing, bad)
	}

	for _, bad := range []string{"2024-3-15", "15/03/2024", "2024-02-30"} {
		a := base
		a.Date = bad
		assert.ErrorIs(t, ValidateAppointment(a), ErrInvalidInput, bad)
	}

	assert.ErrorIs(t, ValidateVisit(models.Visit{OwnerID: "u", PatientID: "p", Date: "2024-3-1", Treatment: "Cleaning"}), ErrInvalidInput)
}

func TestValidateSignUp(t *testing.T) {
	assert.NoError(t, ValidateSignUp(SignUpInput{Email: "clinic@example.com", ClinicName: "Sonrisas"}))
	assert.ErrorIs(t, ValidateSignUp(SignUpInput{Email: "clinic@example.com"}), ErrValidationMissing)
	assert.ErrorIs(t, ValidateSignUp(SignUpInput{ClinicName: "Sonrisas"}), ErrValidationMissing)
	assert.ErrorIs(t, ValidateSignIn(SignInInput{}), ErrValidationMissing)
}

func TestSessionSealerRoundTrip(t *testing.T) {
	sealer, err := NewSessionSealer([]byte(testKey))
	require.NoError(t, err)

	user := models.User{ID: "local_1", Email: "clinic@example.com", ClinicName: "Sonrisas", CreatedAt: time.Now().UTC().Truncate(time.Second)}
	token, err := sealer.Seal(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v2.local."))

	opened, err := sealer.Open(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, opened.ID)
	assert.Equal(t, user.Email, opened.Email)
	assert.True(t, user.CreatedAt.Equal(opened.CreatedAt))
}

func TestSessionSealerRejectsOtherKey(t *testing.T) {
	sealer, err := NewSessionSealer([]byte(testKey))
	require.NoError(t, err)
	other, err := NewSessionSealer([]byte("fedcba9876543210fedcba9876543210"))
	require.NoError(t, err)

	token, err := sealer.Seal(models.User{ID: "local_1"})
	require.NoError(t, err)

	_, err = other.Open(token)
	assert.Error(t, err)

	_, err = NewSessionSealer([]byte("short"))
	assert.Error(t, err)
}

func TestNewBookingNotifierDisabledWithoutHost(t *testing.T) {
	n := NewBookingNotifier(config.SMTPConfig{})
	assert.IsType(t, NopNotifier{}, n)
	assert.NoError(t, n.NotifyBooking("clinic@example.com", models.Appointment{}))

	assert.IsType(t, &SMTPNotifier{}, NewBookingNotifier(config.SMTPConfig{Host: "smtp.example.com", Port: 587}))
}

func TestBookingMessage(t *testing.T) {
	reason := "Control <anual>"
	m := BookingMessage("from@example.com", "clinic@example.com", models.Appointment{
		PatientName: "Ana",
		Date:        "2024-03-15",
		Time:        "09:30",
		Reason:      &reason,
	})

	assert.Equal(t, []string{"clinic@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Appointment booked for 2024-03-15"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Control &lt;anual&gt;")
}
