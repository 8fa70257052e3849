package services

import (
	"DentalSimple/models"
	"DentalSimple/repositories"
	"DentalSimple/utils"
	"context"
	"fmt"
	"time"
)

type CalendarService struct {
	store repositories.RecordStore
}

func NewCalendarService(store repositories.RecordStore) *CalendarService {
	return &CalendarService{store: store}
}

// MonthRange returns the first and last calendar dates of a month.
func MonthRange(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d/%d", utils.ErrInvalidInput, year, month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

// Month builds the agenda for one month, with appointments grouped by date.
func (s *CalendarService) Month(ctx context.Context, ownerID string, year, month int) (*models.CalendarMonth, error) {
	first, last, err := MonthRange(year, month)
	if err != nil {
		return nil, err
	}

	filter := repositories.AppointmentFilter{From: first.Format(DateLayout), To: last.Format(DateLayout)}
	appointments, err := s.store.ListAppointments(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]models.Appointment)
	for _, appointment := range appointments {
		byDate[appointment.Date] = append(byDate[appointment.Date], appointment)
	}

	return &models.CalendarMonth{
		Year:         year,
		Month:        month,
		FirstDay:     filter.From,
		LastDay:      filter.To,
		DaysInMonth:  last.Day(),
		StartWeekday: int(first.Weekday()),
		Appointments: byDate,
	}, nil
}
