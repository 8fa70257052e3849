package utils

import (
	"DentalSimple/config"
	"DentalSimple/models"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

// BookingNotifier tells the clinic that an appointment was booked.
type BookingNotifier interface {
	NotifyBooking(to string, appointment models.Appointment) error
}

// NopNotifier drops every notice.
type NopNotifier struct{}

func (NopNotifier) NotifyBooking(string, models.Appointment) error { return nil }

// SMTPNotifier sends booking notices through an SMTP relay.
type SMTPNotifier struct {
	from   string
	dialer *gomail.Dialer
}

// NewBookingNotifier returns an SMTP notifier, or a NopNotifier when no host is configured.
func NewBookingNotifier(cfg config.SMTPConfig) BookingNotifier {
	if cfg.Host == "" {
		return NopNotifier{}
	}
	return &SMTPNotifier{
		from:   cfg.User,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (n *SMTPNotifier) NotifyBooking(to string, appointment models.Appointment) error {
	return n.dialer.DialAndSend(BookingMessage(n.from, to, appointment))
}

// BookingMessage builds the notice email.
func BookingMessage(from, to string, appointment models.Appointment) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Appointment booked for %s", appointment.Date))

	patient := appointment.PatientName
	if patient == "" {
		patient = appointment.PatientID
	}
	reason := ""
	if appointment.Reason != nil {
		reason = *appointment.Reason
	}

	m.SetBody("text/plain", fmt.Sprintf("Appointment booked: %s on %s at %s. %s",
		patient, appointment.Date, appointment.Time, reason))

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<body style="font-family: Arial, sans-serif;">
		<h1>Appointment booked</h1>
		<p><strong>` + html.EscapeString(patient) + `</strong></p>
		<p>` + html.EscapeString(appointment.Date) + ` ` + html.EscapeString(appointment.Time) + `</p>
		<p>` + html.EscapeString(reason) + `</p>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)
	return m
}
