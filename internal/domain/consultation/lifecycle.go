package consultation

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Lifecycle aplica as transições de status. Strict=false reproduz o
// comportamento permissivo: cancelar ou finalizar a partir de qualquer
// estado, nunca voltando para S.
type Lifecycle struct {
	Strict bool
}

// ===============================
// Domain Actions
// ===============================

func (l Lifecycle) Cancel(c *models.Consultation, now time.Time) error {
	if err := CanCancel(Status(c.Status), l.Strict); err != nil {
		return err
	}

	c.Status = string(StatusCanceled)
	c.CanceledAt = &now
	return nil
}

func (l Lifecycle) Finish(c *models.Consultation, now time.Time) error {
	if err := CanFinish(Status(c.Status), l.Strict); err != nil {
		return err
	}

	c.Status = string(StatusFinished)
	c.FinishedAt = &now
	return nil
}
