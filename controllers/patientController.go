package controllers

import (
	"DentalSimple/handlers"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes registers the routes that act on the signed-in clinic's
// records. The group is expected to carry the session middleware.
func SetupClinicRoutes(
	group *gin.RouterGroup,
	patientHandler *handlers.PatientHandler,
	visitHandler *handlers.VisitHandler,
	appointmentHandler *handlers.AppointmentHandler,
) {
	group.GET("/dashboard", appointmentHandler.GetDashboard)

	group.POST("/patients", patientHandler.CreatePatient)
	group.GET("/patients", patientHandler.GetAllPatients)
	group.GET("/patients/:patient_id", patientHandler.GetPatientRecord)
	group.PUT("/patients/:patient_id", patientHandler.UpdatePatient)

	group.POST("/patients/:patient_id/visits", visitHandler.CreateVisit)
	group.GET("/patients/:patient_id/visits", visitHandler.GetAllVisits)

	group.POST("/appointments", appointmentHandler.CreateAppointment)
	group.GET("/appointments", appointmentHandler.GetAllAppointments)
	group.GET("/calendar/:year/:month", appointmentHandler.GetCalendarMonth)
}
