package handlers

import (
	"DentalSimple/middlewares"
	"DentalSimple/models"
	"DentalSimple/repositories"
	"DentalSimple/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointments *services.AppointmentService
	dashboard    *services.DashboardService
	calendar     *services.CalendarService
}

func NewAppointmentHandler(
	appointments *services.AppointmentService,
	dashboard *services.DashboardService,
	calendar *services.CalendarService,
) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, dashboard: dashboard, calendar: calendar}
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	var appointment models.Appointment
	if !bindJSON(c, &appointment) {
		return
	}
	if err := parseDate("date", appointment.Date); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if err := h.appointments.Book(c.Request.Context(), owner, &appointment); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusCreated)
}

// GetAllAppointments lists the appointments between ?from= and ?to=, both inclusive.
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	filter := repositories.AppointmentFilter{From: c.Query("from"), To: c.Query("to")}
	for name, value := range map[string]string{"from": filter.From, "to": filter.To} {
		if err := parseDate(name, value); err != nil {
			middlewares.RespondError(c, err)
			return
		}
	}

	appointments, err := h.appointments.List(c.Request.Context(), owner.ID, filter)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointments, http.StatusOK)
}

func (h *AppointmentHandler) GetDashboard(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	summary, err := h.dashboard.Summary(c.Request.Context(), owner.ID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, summary, http.StatusOK)
}

func (h *AppointmentHandler) GetCalendarMonth(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		middlewares.HttpError(c, "year must be a number", http.StatusBadRequest, err)
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		middlewares.HttpError(c, "month must be a number", http.StatusBadRequest, err)
		return
	}

	calendar, err := h.calendar.Month(c.Request.Context(), owner.ID, year, month)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, calendar, http.StatusOK)
}
