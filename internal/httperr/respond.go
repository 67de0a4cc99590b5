package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/pkg/logger"
)

// Respond converte qualquer erro vindo de um use case em resposta JSON.
// Nada escapa como pânico ou 500 sem corpo.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindPersistence {
			log := logger.Get()
			log.Error().
				Err(appErr.Err).
				Str("path", c.FullPath()).
				Msg("persistence failure")
		}
		Write(c, appErr.Status(), appErr.Code, appErr.Message)
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		Conflict(c, be.Code, businessMessage(be.Code))
		return
	}

	log := logger.Get()
	log.Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg("unhandled error")

	Write(c, http.StatusInternalServerError, "internal_error", "Erro interno do servidor.")
}

// Abort é o Respond usado por middlewares.
func Abort(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}

func businessMessage(code string) string {
	switch code {
	case "invalid_state":
		return "A consulta não está agendada."
	default:
		return "Operação não permitida."
	}
}
