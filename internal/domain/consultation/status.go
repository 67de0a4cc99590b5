package consultation

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// ===============================
// Consultation Status
// ===============================

type Status string

const (
	StatusScheduled Status = "S"
	StatusFinished  Status = "F"
	StatusCanceled  Status = "C"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusFinished, StatusCanceled:
		return true
	}
	return false
}

// Terminal: nenhuma transição sai de F ou C.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCanceled
}

// ===============================
// Validations
// ===============================

// CanCancel: no modo estrito só uma consulta agendada pode ser cancelada.
func CanCancel(current Status, strict bool) error {
	if strict && current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanFinish: no modo estrito só uma consulta agendada recebe atendimento.
func CanFinish(current Status, strict bool) error {
	if strict && current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
