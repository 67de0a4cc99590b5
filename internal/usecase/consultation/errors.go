package consultation

import (
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

var (
	errConsultationNotFound = httperr.ErrNotFound("consultation_not_found", "Consulta não existe.")
	errAttendanceNotFound   = httperr.ErrNotFound("attendance_not_found", "Atendimento não existe.")

	// mensagem própria do registro de atendimento
	errAttendanceConsultationNotFound = httperr.ErrNotFound("consultation_not_found", "Não foi possível encontrar essa consulta.")
)

func orNotFound(err, nf error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nf
	}
	return err
}
