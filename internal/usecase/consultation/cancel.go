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

type CancelConsultation struct {
	store     store.Store
	lifecycle domain.Lifecycle
	now       func() time.Time
}

func NewCancelConsultation(
	s store.Store,
	lifecycle domain.Lifecycle,
	now func() time.Time,
) *CancelConsultation {
	return &CancelConsultation{
		store:     s,
		lifecycle: lifecycle,
		now:       now,
	}
}

// Execute trava a linha (FOR UPDATE) antes de checar o status, então um
// cancelamento concorrente com um atendimento enxerga o estado final do outro.
func (uc *CancelConsultation) Execute(
	ctx context.Context,
	caller account.Identity,
	id uint,
) (*models.Consultation, error) {

	var (
		out  *models.Consultation
		from string
	)

	err := uc.store.Atomic(ctx, func(r store.Repos) error {
		c, err := r.Consultations.GetForUpdate(ctx, id)
		if err != nil {
			return orNotFound(err, errConsultationNotFound)
		}

		from = c.Status
		if err := uc.lifecycle.Cancel(c, uc.now()); err != nil {
			return err
		}

		if err := r.Consultations.Save(ctx, c); err != nil {
			return err
		}

		if err := r.Audit.Record(ctx, audit.Event{
			UserID:   audit.Ptr(caller.UserID()),
			Action:   "consultation_canceled",
			Entity:   "consultation",
			EntityID: audit.Ptr(c.ID),
			Metadata: map[string]any{"from": from},
		}); err != nil {
			return err
		}

		out, err = r.Consultations.Get(ctx, c.ID)
		return err
	})
	if err != nil {
		if httperr.IsBusiness(err, "invalid_state") {
			metrics.ConsultationRejectedTotal.WithLabelValues("cancel", from).Inc()
		}
		return nil, err
	}

	metrics.ConsultationTransitionsTotal.WithLabelValues(from, out.Status).Inc()
	return out, nil
}
