package account

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

type EditPatientInput struct {
	User    domain.UserPatch
	Patient domain.PatientPatch
}

type EditDoctorInput struct {
	User   domain.UserPatch
	Doctor domain.DoctorPatch
}

// Edit aplica a auto-edição do chamador. Tudo numa transação: qualquer
// falha de integridade desfaz usuário e perfil juntos.
type Edit struct {
	store  store.Store
	hasher auth.Hasher
}

func NewEdit(s store.Store, hasher auth.Hasher) *Edit {
	return &Edit{store: s, hasher: hasher}
}

// ======================================================
// PATIENT
// ======================================================

func (uc *Edit) Patient(
	ctx context.Context,
	caller domain.Identity,
	in EditPatientInput,
) (*models.User, error) {

	if _, ok := caller.Patient(); !ok {
		return nil, httperr.ErrAuthorization("patient_only", "Apenas pacientes podem editar dados de paciente.")
	}

	var out *models.User
	err := uc.store.Atomic(ctx, func(r store.Repos) error {
		u, err := r.Accounts.GetUser(ctx, caller.UserID())
		if err != nil {
			return orNotFound(err, errUserNotFound)
		}
		if u.Patient == nil {
			return errPatientNotFound
		}

		if err := in.User.Apply(u, uc.hasher.Hash); err != nil {
			return err
		}
		in.Patient.Apply(u.Patient)

		if err := r.Accounts.SaveUser(ctx, u); err != nil {
			return err
		}
		if err := r.Accounts.SavePatient(ctx, u.Patient); err != nil {
			return err
		}

		if err := r.Audit.Record(ctx, audit.Event{
			UserID:   audit.Ptr(u.ID),
			Action:   "patient_edited",
			Entity:   "user",
			EntityID: audit.Ptr(u.ID),
			Metadata: map[string]any{"password_changed": in.User.Password != nil},
		}); err != nil {
			return err
		}

		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ======================================================
// DOCTOR
// ======================================================

func (uc *Edit) Doctor(
	ctx context.Context,
	caller domain.Identity,
	in EditDoctorInput,
) (*models.User, error) {

	if _, ok := caller.Doctor(); !ok {
		return nil, httperr.ErrAuthorization("doctor_only", "Apenas médicos podem editar dados de médico.")
	}

	var out *models.User
	err := uc.store.Atomic(ctx, func(r store.Repos) error {
		u, err := r.Accounts.GetUser(ctx, caller.UserID())
		if err != nil {
			return orNotFound(err, errUserNotFound)
		}
		if u.Doctor == nil {
			return errDoctorNotFound
		}

		if err := in.User.Apply(u, uc.hasher.Hash); err != nil {
			return err
		}
		in.Doctor.Apply(u.Doctor)

		if in.Doctor.SpecialtyID != nil {
			spec, err := r.Accounts.GetSpecialty(ctx, *in.Doctor.SpecialtyID)
			if err != nil {
				return orNotFound(err, errSpecialtyNotFound)
			}
			u.Doctor.Specialty = *spec
		}

		if err := r.Accounts.SaveUser(ctx, u); err != nil {
			return err
		}
		if err := r.Accounts.SaveDoctor(ctx, u.Doctor); err != nil {
			return err
		}

		if err := r.Audit.Record(ctx, audit.Event{
			UserID:   audit.Ptr(u.ID),
			Action:   "doctor_edited",
			Entity:   "user",
			EntityID: audit.Ptr(u.ID),
			Metadata: map[string]any{"password_changed": in.User.Password != nil},
		}); err != nil {
			return err
		}

		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
