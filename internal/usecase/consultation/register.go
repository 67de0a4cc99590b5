package consultation

import (
	"context"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	DoctorID     uint
	Date         string
	Time         string
	Observations string
}

// ======================================================
// USE CASE
// ======================================================

type RegisterConsultation struct {
	store    store.Store
	timezone string
}

func NewRegisterConsultation(s store.Store, tz string) *RegisterConsultation {
	return &RegisterConsultation{store: s, timezone: tz}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute agenda uma consulta para o próprio paciente chamador. Médico
// inexistente é rejeitado pela FK e sobe como PersistenceError.
func (uc *RegisterConsultation) Execute(
	ctx context.Context,
	caller account.Identity,
	in RegisterInput,
) (*models.Consultation, error) {

	// --------------------------------------------------
	// Só paciente agenda, e sempre para si
	// --------------------------------------------------
	patient, ok := caller.Patient()
	if !ok {
		return nil, httperr.ErrAuthorization("patient_only", "Apenas pacientes podem agendar consultas.")
	}

	// --------------------------------------------------
	// Data / hora no fuso da clínica
	// --------------------------------------------------
	date, err := timezone.ParseDate(uc.timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "Data ou hora inválida.")
	}
	h, m, sec, err := timezone.ParseClock(in.Time)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "Data ou hora inválida.")
	}

	c := &models.Consultation{
		Date:         datatypes.Date(date),
		Time:         datatypes.NewTime(h, m, sec, 0),
		Status:       string(domain.InitialStatus()),
		Observations: in.Observations,
		PatientID:    patient.ID,
		DoctorID:     in.DoctorID,
	}

	var created *models.Consultation
	err = uc.store.Atomic(ctx, func(r store.Repos) error {
		if err := r.Consultations.Create(ctx, c); err != nil {
			return err
		}

		if err := r.Audit.Record(ctx, audit.Event{
			UserID:   audit.Ptr(caller.UserID()),
			Action:   "consultation_registered",
			Entity:   "consultation",
			EntityID: audit.Ptr(c.ID),
			Metadata: map[string]any{"doctor_id": c.DoctorID},
		}); err != nil {
			return err
		}

		full, err := r.Consultations.Get(ctx, c.ID)
		if err != nil {
			return err
		}
		created = full
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ConsultationTransitionsTotal.WithLabelValues("", created.Status).Inc()
	return created, nil
}
