package consultation

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

// Queries: leituras sem filtro de dono, para qualquer chamador autenticado.
type Queries struct {
	store store.Store
}

func NewQueries(s store.Store) *Queries {
	return &Queries{store: s}
}

func (uc *Queries) Consultations(ctx context.Context, f domain.Filter) ([]models.Consultation, error) {
	return uc.store.Repos().Consultations.List(ctx, f)
}

func (uc *Queries) Consultation(ctx context.Context, id uint) (*models.Consultation, error) {
	c, err := uc.store.Repos().Consultations.Get(ctx, id)
	if err != nil {
		return nil, orNotFound(err, errConsultationNotFound)
	}
	return c, nil
}

func (uc *Queries) Attendances(ctx context.Context, f domain.AttendanceFilter) ([]models.Attendance, error) {
	return uc.store.Repos().Consultations.ListAttendances(ctx, f)
}

func (uc *Queries) Attendance(ctx context.Context, id uint) (*models.Attendance, error) {
	a, err := uc.store.Repos().Consultations.GetAttendance(ctx, id)
	if err != nil {
		return nil, orNotFound(err, errAttendanceNotFound)
	}
	return a, nil
}
