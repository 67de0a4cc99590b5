package consultation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

type RegisterAttendanceInput struct {
	ConsultationID uint
	Observations   string
}

// RegisterAttendance finaliza a consulta e grava o atendimento na mesma
// transação: ou os dois ficam visíveis, ou nenhum.
type RegisterAttendance struct {
	store     store.Store
	lifecycle domain.Lifecycle
	now       func() time.Time
}

func NewRegisterAttendance(
	s store.Store,
	lifecycle domain.Lifecycle,
	now func() time.Time,
) *RegisterAttendance {
	return &RegisterAttendance{
		store:     s,
		lifecycle: lifecycle,
		now:       now,
	}
}

func (uc *RegisterAttendance) Execute(
	ctx context.Context,
	caller account.Identity,
	in RegisterAttendanceInput,
) (*models.Attendance, error) {

	var (
		att  *models.Attendance
		from string
	)

	err := uc.store.Atomic(ctx, func(r store.Repos) error {
		c, err := r.Consultations.GetForUpdate(ctx, in.ConsultationID)
		if err != nil {
			return orNotFound(err, errAttendanceConsultationNotFound)
		}

		from = c.Status
		if err := uc.lifecycle.Finish(c, uc.now()); err != nil {
			return err
		}

		if err := r.Consultations.Save(ctx, c); err != nil {
			return err
		}

		a := &models.Attendance{
			Observations:   in.Observations,
			ConsultationID: c.ID,
		}
		if err := r.Consultations.CreateAttendance(ctx, a); err != nil {
			return err
		}

		if err := r.Audit.Record(ctx, audit.Event{
			UserID:   audit.Ptr(caller.UserID()),
			Action:   "attendance_registered",
			Entity:   "attendance",
			EntityID: audit.Ptr(a.ID),
			Metadata: map[string]any{"consultation_id": c.ID, "from": from},
		}); err != nil {
			return err
		}

		att = a
		return nil
	})
	if err != nil {
		if httperr.IsBusiness(err, "invalid_state") {
			metrics.ConsultationRejectedTotal.WithLabelValues("finish", from).Inc()
		}
		return nil, err
	}

	metrics.ConsultationTransitionsTotal.WithLabelValues(from, string(domain.StatusFinished)).Inc()
	return att, nil
}
