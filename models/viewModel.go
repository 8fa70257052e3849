package models

// DashboardSummary is the landing view: how many patients the clinic has and
// what is booked for today.
type DashboardSummary struct {
	Today        string        `json:"today"`
	PatientCount int64         `json:"patient_count"`
	Appointments []Appointment `json:"appointments"`
}

// CalendarMonth is one month of the agenda. StartWeekday is 0 for Sunday.
type CalendarMonth struct {
	Year         int                      `json:"year"`
	Month        int                      `json:"month"`
	FirstDay     string                   `json:"first_day"`
	LastDay      string                   `json:"last_day"`
	DaysInMonth  int                      `json:"days_in_month"`
	StartWeekday int                      `json:"start_weekday"`
	Appointments map[string][]Appointment `json:"appointments"`
}
