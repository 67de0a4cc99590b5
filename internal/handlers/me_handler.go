package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
)

func currentIdentity(c *gin.Context) (account.Identity, bool) {
	return middleware.CurrentIdentity(c)
}

type MeHandler struct {
	directory *ucAccount.Directory
}

func NewMeHandler(directory *ucAccount.Directory) *MeHandler {
	return &MeHandler{directory: directory}
}

// GetMe devolve o payload user-role do chamador.
func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Credenciais não informadas.")
		return
	}

	u, err := h.directory.User(c.Request.Context(), id.UserID())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.UserRole(*u))
}
