package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	ucConsultation "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/consultation"
)

// ======================================================
// HANDLER
// ======================================================

type ConsultationHandler struct {
	register *ucConsultation.RegisterConsultation
	cancel   *ucConsultation.CancelConsultation
	queries  *ucConsultation.Queries
}

func NewConsultationHandler(
	register *ucConsultation.RegisterConsultation,
	cancel *ucConsultation.CancelConsultation,
	queries *ucConsultation.Queries,
) *ConsultationHandler {
	return &ConsultationHandler{
		register: register,
		cancel:   cancel,
		queries:  queries,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateConsultationRequest struct {
	DoctorID     uint   `json:"doctor_id" binding:"required"`
	Date         string `json:"date" binding:"required,date"`
	Time         string `json:"time" binding:"required,clock"`
	Observations string `json:"observations" binding:"max=200"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ConsultationHandler) Create(c *gin.Context) {
	caller, _ := currentIdentity(c)

	var req CreateConsultationRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	created, err := h.register.Execute(c.Request.Context(), caller, ucConsultation.RegisterInput{
		DoctorID:     req.DoctorID,
		Date:         req.Date,
		Time:         req.Time,
		Observations: req.Observations,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.Consultation(*created))
}

// ======================================================
// CANCEL
// ======================================================

func (h *ConsultationHandler) Cancel(c *gin.Context) {
	caller, _ := currentIdentity(c)

	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	updated, err := h.cancel.Execute(c.Request.Context(), caller, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.Consultation(*updated))
}

// ======================================================
// READ
// ======================================================

func (h *ConsultationHandler) List(c *gin.Context) {
	var f domain.Filter

	if raw := c.Query("status"); raw != "" {
		st := domain.Status(raw)
		if !st.Valid() {
			httperr.BadRequest(c, "invalid_filter", "Filtro inválido: status.")
			return
		}
		f.Status = &st
	}

	var err error
	if f.PatientID, err = queryUint(c, "patient_id"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if f.DoctorID, err = queryUint(c, "doctor_id"); err != nil {
		httperr.Respond(c, err)
		return
	}

	list, err := h.queries.Consultations(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.Consultations(list))
}

func (h *ConsultationHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	found, err := h.queries.Consultation(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.Consultation(*found))
}
