package account

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

// DoctorQuery: Pending != nil ativa o filtro "tem consulta agendada comigo",
// permitido só para pacientes.
type DoctorQuery struct {
	ID      *uint
	Pending *bool
}

var errPendingFilterForbidden = httperr.ErrAuthorization(
	"pending_filter_forbidden",
	"Apenas pacientes podem filtrar médicos por consulta pendente.",
)

// Directory concentra as leituras de usuários, médicos e pacientes.
type Directory struct {
	store store.Store
}

func NewDirectory(s store.Store) *Directory {
	return &Directory{store: s}
}

// ======================================================
// USERS
// ======================================================

func (uc *Directory) Users(ctx context.Context, f domain.UserFilter) ([]models.User, error) {
	return uc.store.Repos().Accounts.ListUsers(ctx, f)
}

func (uc *Directory) User(ctx context.Context, id uint) (*models.User, error) {
	u, err := uc.store.Repos().Accounts.GetUser(ctx, id)
	if err != nil {
		return nil, orNotFound(err, errUserNotFound)
	}
	return u, nil
}

// ======================================================
// DOCTORS
// ======================================================

func (uc *Directory) Doctors(
	ctx context.Context,
	caller domain.Identity,
	q DoctorQuery,
) ([]models.Doctor, error) {

	repos := uc.store.Repos()
	f := domain.DoctorFilter{ID: q.ID}

	if q.Pending != nil {
		patient, ok := caller.Patient()
		if !ok {
			return nil, errPendingFilterForbidden
		}

		ids, err := repos.Consultations.PendingDoctorIDs(ctx, patient.ID)
		if err != nil {
			return nil, err
		}
		f.Membership = &domain.IDMembership{IDs: ids, In: *q.Pending}
	}

	return repos.Accounts.ListDoctors(ctx, f)
}

func (uc *Directory) Doctor(ctx context.Context, id uint) (*models.Doctor, error) {
	d, err := uc.store.Repos().Accounts.GetDoctor(ctx, id)
	if err != nil {
		return nil, orNotFound(err, errDoctorNotFound)
	}
	return d, nil
}

// ======================================================
// PATIENTS
// ======================================================

func (uc *Directory) Patients(ctx context.Context, f domain.PatientFilter) ([]models.Patient, error) {
	return uc.store.Repos().Accounts.ListPatients(ctx, f)
}

func (uc *Directory) Patient(ctx context.Context, id uint) (*models.Patient, error) {
	p, err := uc.store.Repos().Accounts.GetPatient(ctx, id)
	if err != nil {
		return nil, orNotFound(err, errPatientNotFound)
	}
	return p, nil
}
