package account

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

// ======================================================
// DELETE ACCOUNT
// ======================================================

// DeleteAccount remove o perfil e depois o usuário. As FKs com RESTRICT
// impedem a ordem inversa e a remoção de quem ainda tem consultas.
type DeleteAccount struct {
	store store.Store
}

func NewDeleteAccount(s store.Store) *DeleteAccount {
	return &DeleteAccount{store: s}
}

func (uc *DeleteAccount) Execute(ctx context.Context, caller domain.Identity) error {
	return uc.store.Atomic(ctx, func(r store.Repos) error {
		u, err := r.Accounts.GetUser(ctx, caller.UserID())
		if err != nil {
			return orNotFound(err, errUserNotFound)
		}

		switch domain.Role(u.Role) {
		case domain.RolePatient:
			if u.Patient != nil {
				if err := r.Accounts.DeletePatient(ctx, u.Patient.ID); err != nil {
					return orNotFound(err, errPatientNotFound)
				}
			}
		case domain.RoleDoctor:
			if u.Doctor != nil {
				if err := r.Accounts.DeleteDoctor(ctx, u.Doctor.ID); err != nil {
					return orNotFound(err, errDoctorNotFound)
				}
			}
		}

		if err := r.Accounts.DeleteUser(ctx, u.ID); err != nil {
			return orNotFound(err, errUserNotFound)
		}

		return r.Audit.Record(ctx, audit.Event{
			UserID:   audit.Ptr(u.ID),
			Action:   "account_deleted",
			Entity:   "user",
			EntityID: audit.Ptr(u.ID),
			Metadata: map[string]any{"role": u.Role, "username": u.Username},
		})
	})
}

// ======================================================
// DEACTIVATE
// ======================================================

// Deactivate bloqueia login e tokens já emitidos da conta.
type Deactivate struct {
	store store.Store
}

func NewDeactivate(s store.Store) *Deactivate {
	return &Deactivate{store: s}
}

func (uc *Deactivate) Execute(ctx context.Context, username string) error {
	return uc.store.Atomic(ctx, func(r store.Repos) error {
		u, err := r.Accounts.FindUserByUsername(ctx, username)
		if err != nil {
			return orNotFound(err, errUserNotFound)
		}

		u.IsActive = false
		if err := r.Accounts.SaveUser(ctx, u); err != nil {
			return err
		}

		return r.Audit.Record(ctx, audit.Event{
			Action:   "account_deactivated",
			Entity:   "user",
			EntityID: audit.Ptr(u.ID),
		})
	})
}
