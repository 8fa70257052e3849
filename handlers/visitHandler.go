package handlers

import (
	"DentalSimple/middlewares"
	"DentalSimple/models"
	"DentalSimple/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type VisitHandler struct {
	service *services.VisitService
}

func NewVisitHandler(service *services.VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

func (h *VisitHandler) CreateVisit(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	var visit models.Visit
	if !bindJSON(c, &visit) {
		return
	}
	if err := parseDate("date", visit.Date); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if err := h.service.Create(c.Request.Context(), owner.ID, c.Param("patient_id"), &visit); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, visit, http.StatusCreated)
}

func (h *VisitHandler) GetAllVisits(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	visits, err := h.service.List(c.Request.Context(), owner.ID, c.Param("patient_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, visits, http.StatusOK)
}
