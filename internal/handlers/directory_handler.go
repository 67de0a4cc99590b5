package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
)

// DirectoryHandler atende as listagens de médicos e pacientes.
type DirectoryHandler struct {
	directory *ucAccount.Directory
}

func NewDirectoryHandler(directory *ucAccount.Directory) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// --------- Doctors ---------

func (h *DirectoryHandler) ListDoctors(c *gin.Context) {
	caller, _ := currentIdentity(c)

	id, err := queryUint(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	pending, err := queryBool(c, "pending_consultation")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	doctors, err := h.directory.Doctors(c.Request.Context(), caller, ucAccount.DoctorQuery{
		ID:      id,
		Pending: pending,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.DoctorList(doctors))
}

func (h *DirectoryHandler) GetDoctor(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	d, err := h.directory.Doctor(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.DoctorList([]models.Doctor{*d})[0])
}

// --------- Patients ---------

func (h *DirectoryHandler) ListPatients(c *gin.Context) {
	id, err := queryUint(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	patients, err := h.directory.Patients(c.Request.Context(), account.PatientFilter{ID: id})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.PatientList(patients))
}

func (h *DirectoryHandler) GetPatient(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := h.directory.Patient(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.PatientList([]models.Patient{*p})[0])
}
