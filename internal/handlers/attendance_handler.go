package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	ucConsultation "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/consultation"
)

type AttendanceHandler struct {
	register *ucConsultation.RegisterAttendance
	queries  *ucConsultation.Queries
}

func NewAttendanceHandler(
	register *ucConsultation.RegisterAttendance,
	queries *ucConsultation.Queries,
) *AttendanceHandler {
	return &AttendanceHandler{register: register, queries: queries}
}

type CreateAttendanceRequest struct {
	ConsultationID uint   `json:"consultation_id" binding:"required"`
	Observations   string `json:"observations"`
}

func (h *AttendanceHandler) Create(c *gin.Context) {
	caller, _ := currentIdentity(c)

	var req CreateAttendanceRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	att, err := h.register.Execute(c.Request.Context(), caller, ucConsultation.RegisterAttendanceInput{
		ConsultationID: req.ConsultationID,
		Observations:   req.Observations,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.Attendance(*att))
}

func (h *AttendanceHandler) List(c *gin.Context) {
	consultationID, err := queryUint(c, "consultation_id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	list, err := h.queries.Attendances(c.Request.Context(), domain.AttendanceFilter{
		ConsultationID: consultationID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.Attendances(list))
}

func (h *AttendanceHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	att, err := h.queries.Attendance(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.Attendance(*att))
}
