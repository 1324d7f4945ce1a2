package handler

import (
	"net/http"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/api/middleware"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/apperr"
	"github.com/gin-gonic/gin"
)

// ListPatients returns the records owned by the calling doctor.
func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.Store.ListPatientsForDoctor(c.GetString(middleware.CtxUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

// GetPatient returns one record. Records owned by another doctor are
// reported as not found rather than forbidden, so the endpoint does not
// confirm their existence.
func (h *Handler) GetPatient(c *gin.Context) {
	patient, err := h.Store.GetPatientByID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if patient.DoctorID != c.GetString(middleware.CtxUserID) {
		h.fail(c, apperr.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, patient)
}
