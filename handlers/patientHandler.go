package handlers

import (
	"DentalSimple/middlewares"
	"DentalSimple/models"
	"DentalSimple/repositories"
	"DentalSimple/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	var patient models.Patient
	if !bindJSON(c, &patient) {
		return
	}
	if err := h.service.Create(c.Request.Context(), owner.ID, &patient); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusCreated)
}

// GetPatientRecord returns the patient together with its visit history.
func (h *PatientHandler) GetPatientRecord(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	record, err := h.service.GetRecord(c.Request.Context(), owner.ID, c.Param("patient_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, record, http.StatusOK)
}

// GetAllPatients lists newest first, or by name with ?order=name.
func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	order := repositories.OrderByNewest
	switch c.Query("order") {
	case "", "newest":
	case "name":
		order = repositories.OrderByName
	default:
		middlewares.HttpError(c, "order must be newest or name", http.StatusBadRequest, nil)
		return
	}

	patients, err := h.service.List(c.Request.Context(), owner.ID, order)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, patients, http.StatusOK)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	var patch models.PatientPatch
	if !bindJSON(c, &patch) {
		return
	}
	patient, err := h.service.Update(c.Request.Context(), owner.ID, c.Param("patient_id"), patch)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusOK)
}
