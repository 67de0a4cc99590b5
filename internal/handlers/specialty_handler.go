package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	ucSpecialty "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/specialty"
)

type SpecialtyHandler struct {
	specialties *ucSpecialty.Specialties
}

func NewSpecialtyHandler(specialties *ucSpecialty.Specialties) *SpecialtyHandler {
	return &SpecialtyHandler{specialties: specialties}
}

type CreateSpecialtyRequest struct {
	Description string `json:"description" binding:"required,max=200"`
}

func (h *SpecialtyHandler) List(c *gin.Context) {
	list, err := h.specialties.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.Specialties(list))
}

func (h *SpecialtyHandler) Create(c *gin.Context) {
	var req CreateSpecialtyRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	s, err := h.specialties.Create(c.Request.Context(), actorID(c), req.Description)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.Specialty(*s))
}

func (h *SpecialtyHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.specialties.Delete(c.Request.Context(), actorID(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
